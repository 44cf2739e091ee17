package model

import (
	"strings"
)

// Table represents one table node with its attributes and rows
type Table struct {
	Index int
	Attrs map[string]string
	Rows  []Row
}

// Row is an ordered sequence of cells. The first cell is a label.
type Row struct {
	Cells []Cell
}

// Cell represents a table cell
type Cell struct {
	ID   string
	Text string
}

// NewTable creates an empty table with the given attributes
func NewTable(attrs map[string]string) *Table {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Table{
		Attrs: attrs,
		Rows:  make([]Row, 0),
	}
}

// Attr returns the value of the named attribute, or "" if unset.
func (t *Table) Attr(key string) string {
	if t == nil {
		return ""
	}
	return t.Attrs[key]
}

// AddRow appends a row built from the given cell texts.
func (t *Table) AddRow(texts ...string) {
	row := Row{Cells: make([]Cell, len(texts))}
	for i, text := range texts {
		row.Cells[i] = Cell{Text: text}
	}
	t.Rows = append(t.Rows, row)
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// FindCell returns the first cell in the table with the given id.
func (t *Table) FindCell(id string) (*Cell, bool) {
	for i := range t.Rows {
		for j := range t.Rows[i].Cells {
			if t.Rows[i].Cells[j].ID == id {
				return &t.Rows[i].Cells[j], true
			}
		}
	}
	return nil, false
}

// Values returns the text of every cell after the label cell.
func (r Row) Values() []string {
	if len(r.Cells) < 2 {
		return nil
	}
	values := make([]string, 0, len(r.Cells)-1)
	for _, c := range r.Cells[1:] {
		values = append(values, c.Text)
	}
	return values
}

// GetText returns the table as tab-separated text
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row.Cells {
			sb.WriteString(cell.Text)
			if j < len(row.Cells)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
