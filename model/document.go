package model

// Document is a parsed results page reduced to its table structure.
type Document struct {
	Title string

	// Tables holds every table of the page in document order. A nested
	// table follows the table containing it.
	Tables []*Table
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Tables: make([]*Table, 0),
	}
}

// AddTable appends a table and records its position.
func (d *Document) AddTable(t *Table) {
	t.Index = len(d.Tables)
	d.Tables = append(d.Tables, t)
}

// TableCount returns the total number of tables
func (d *Document) TableCount() int {
	return len(d.Tables)
}

// Next returns the table following the one at index i, or nil if there is none.
func (d *Document) Next(i int) *Table {
	if i < 0 || i+1 >= len(d.Tables) {
		return nil
	}
	return d.Tables[i+1]
}
