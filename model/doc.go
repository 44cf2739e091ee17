// Package model provides the intermediate representation for a rogaine
// results page and the records extracted from it.
//
// The input side is a flat view of the page's table markup:
//
//	doc := &model.Document{Tables: tables}
//	for _, t := range doc.Tables {
//	    for _, row := range t.Rows {
//	        fmt.Println(row.Values())
//	    }
//	}
//
// A [Document] lists every table in document order, nested tables included.
// Each [Table] lists every row it contains, and each [Row] every cell.
//
// # Extraction stages
//
// The extraction pipeline passes these values between its stages:
//
//   - [TeamBlock] - a team name paired with its results table
//   - [ClassifiedRow] - a row tagged as points, times, or neither
//   - [PairedEntry] - one checkpoint: a point value and the time it was reached
//   - [Record] - a paired entry annotated with team and running total
//
// # Time of day
//
// [TimeOfDay] is a wall-clock time without a date, serialized as HH:MM:SS.
package model
