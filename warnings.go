package rogain

import (
	"fmt"
	"strings"

	"github.com/tsawler/rogain/locate"
)

// WarningKind classifies a non-fatal extraction issue.
type WarningKind int

const (
	// WarnMissingTeamLabel: a marker table had no team name; the block was dropped.
	WarnMissingTeamLabel WarningKind = iota + 1
	// WarnMissingResultsTable: no table followed a marker; the block was dropped.
	WarnMissingResultsTable
	// WarnUnparsableCell: cells shaped like points or times yielded no value.
	WarnUnparsableCell
	// WarnOrphanTimeRow: a time row had no points row to complete.
	WarnOrphanTimeRow
	// WarnLengthMismatch: paired rows differed in length and were truncated.
	WarnLengthMismatch
	// WarnReplacedPointsRow: a points row was never completed by a time row.
	WarnReplacedPointsRow
)

// String returns the string representation of the kind.
func (k WarningKind) String() string {
	switch k {
	case WarnMissingTeamLabel:
		return "missing_team_label"
	case WarnMissingResultsTable:
		return "missing_results_table"
	case WarnUnparsableCell:
		return "unparsable_cell"
	case WarnOrphanTimeRow:
		return "orphan_time_row"
	case WarnLengthMismatch:
		return "length_mismatch"
	case WarnReplacedPointsRow:
		return "replaced_points_row"
	default:
		return "unknown"
	}
}

// Warning describes something the extraction had to skip.
type Warning struct {
	Kind    WarningKind
	Team    string // empty when the team is unknown
	Table   int    // document index of the table concerned
	Row     int    // row index within the table, -1 for block-level issues
	Message string
}

// String formats the warning for display.
func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(w.Kind.String())
	if w.Team != "" {
		fmt.Fprintf(&sb, " team=%s", w.Team)
	}
	fmt.Fprintf(&sb, " table=%d", w.Table)
	if w.Row >= 0 {
		fmt.Fprintf(&sb, " row=%d", w.Row)
	}
	if w.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(w.Message)
	}
	return sb.String()
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// Summary counts warnings by kind.
type Summary map[WarningKind]int

// Summarize counts warnings by kind.
func Summarize(warnings []Warning) Summary {
	s := make(Summary)
	for _, w := range warnings {
		s[w.Kind]++
	}
	return s
}

// skipWarnings converts locator skips into warnings.
func skipWarnings(skips []locate.Skip) []Warning {
	warnings := make([]Warning, 0, len(skips))
	for _, s := range skips {
		w := Warning{Team: s.Team, Table: s.Marker, Row: -1}
		switch s.Reason {
		case locate.MissingTeamLabel:
			w.Kind = WarnMissingTeamLabel
			w.Message = "marker table has no team name"
		case locate.MissingResultsTable:
			w.Kind = WarnMissingResultsTable
			w.Message = "no table follows the marker"
		}
		warnings = append(warnings, w)
	}
	return warnings
}
