// Package locate finds team blocks in a results document.
//
// A team block starts with a marker table recognized by a fixed attribute
// value (the fixed-width header layout used for every team section). The
// team name is read from a labelled cell in the marker and the team's
// results are the next table in document order.
package locate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/rogain/model"
)

// Signature identifies marker tables and their team-name cell.
type Signature struct {
	Attr        string // attribute to test on each table
	Value       string // required attribute value
	LabelCellID string // id of the cell holding the team name
}

// DefaultSignature matches the results pages this tool was built for.
var DefaultSignature = Signature{
	Attr:        "width",
	Value:       "1381px",
	LabelCellID: "c13",
}

// Reason explains why a marker table produced no block.
type Reason int

const (
	// MissingTeamLabel means the label cell is absent or empty.
	MissingTeamLabel Reason = iota + 1
	// MissingResultsTable means no table follows the marker.
	MissingResultsTable
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case MissingTeamLabel:
		return "missing team label"
	case MissingResultsTable:
		return "missing results table"
	default:
		return "unknown"
	}
}

// Skip records a marker table that was dropped.
type Skip struct {
	Marker int // document index of the marker table
	Team   string
	Reason Reason
}

// IsMarker reports whether t matches the signature.
func (s Signature) IsMarker(t *model.Table) bool {
	return t != nil && t.Attrs != nil && t.Attr(s.Attr) == s.Value
}

// Locate returns the team blocks of doc in document order, along with the
// marker tables that had to be skipped.
func Locate(doc *model.Document, sig Signature) ([]model.TeamBlock, []Skip) {
	var (
		blocks []model.TeamBlock
		skips  []Skip
	)
	if doc == nil {
		return nil, nil
	}

	for i, t := range doc.Tables {
		if !sig.IsMarker(t) {
			continue
		}

		team, ok := TeamName(t, sig.LabelCellID)
		if !ok {
			skips = append(skips, Skip{Marker: i, Reason: MissingTeamLabel})
			continue
		}

		results := doc.Next(i)
		if results == nil {
			skips = append(skips, Skip{Marker: i, Team: team, Reason: MissingResultsTable})
			continue
		}

		blocks = append(blocks, model.TeamBlock{Team: team, Results: results, Marker: i})
	}

	return blocks, skips
}

// TeamName returns the upper-cased text of the marker's label cell.
func TeamName(marker *model.Table, labelCellID string) (string, bool) {
	cell, ok := marker.FindCell(labelCellID)
	if !ok {
		return "", false
	}
	name := strings.TrimSpace(cell.Text)
	if name == "" {
		return "", false
	}
	// A Caser is stateful, so one is built per call.
	return cases.Upper(language.Und).String(name), true
}
