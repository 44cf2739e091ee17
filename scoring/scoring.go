// Package scoring attaches running totals to a team's paired entries.
package scoring

import "github.com/tsawler/rogain/model"

// Tally is a team's running point total.
type Tally struct {
	Total int
}

// Add returns the tally after scoring p points.
func (t Tally) Add(p int) Tally {
	return Tally{Total: t.Total + p}
}

// Accumulate turns one team's entries into records, in order. Each record
// carries the total including its own points. The total starts at zero on
// every call.
func Accumulate(team string, entries []model.PairedEntry) []model.Record {
	records := make([]model.Record, 0, len(entries))
	var tally Tally

	for _, e := range entries {
		tally = tally.Add(e.Point)
		records = append(records, model.Record{
			Team:        team,
			Points:      e.Point,
			Time:        e.Time,
			TotalPoints: tally.Total,
		})
	}

	return records
}
