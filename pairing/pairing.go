// Package pairing matches each points row with the time row that follows it.
//
// A Pairer is a two-state machine. It starts Idle. A points row moves it to
// AwaitingTime, holding the row's values; a later points row replaces them.
// A time row in AwaitingTime zips both value lists up to the shorter length
// and returns to Idle. A time row in Idle is an orphan and is discarded.
// Unclassified rows never change state.
package pairing

import (
	"github.com/tsawler/rogain/model"
)

// State is the pairer's position in the points/time cycle.
type State int

const (
	Idle State = iota
	AwaitingTime
)

// String returns the string representation of the state.
func (s State) String() string {
	if s == AwaitingTime {
		return "awaiting time"
	}
	return "idle"
}

// Event describes the transition taken for one row.
type Event int

const (
	// Ignored: an unclassified row.
	Ignored Event = iota
	// Buffered: a points row was stored while idle.
	Buffered
	// Replaced: a points row overwrote a pending one.
	Replaced
	// Paired: a time row completed the pending points row.
	Paired
	// Orphan: a time row arrived with nothing pending.
	Orphan
)

// String returns the string representation of the event.
func (e Event) String() string {
	switch e {
	case Buffered:
		return "buffered"
	case Replaced:
		return "replaced"
	case Paired:
		return "paired"
	case Orphan:
		return "orphan"
	default:
		return "ignored"
	}
}

// Step is the outcome of feeding one row.
type Step struct {
	Event   Event
	Entries []model.PairedEntry

	// Truncated counts values left unpaired because the two rows differed
	// in length.
	Truncated int
}

// Pairer holds the pending points row of one results table.
// The zero value is Idle and ready to use.
type Pairer struct {
	state   State
	pending []int
}

// State returns the current state.
func (p *Pairer) State() State {
	return p.state
}

// Feed advances the machine by one classified row.
func (p *Pairer) Feed(row model.ClassifiedRow) Step {
	switch row.Kind {
	case model.PointsRow:
		event := Buffered
		if p.state == AwaitingTime {
			event = Replaced
		}
		p.pending = append([]int(nil), row.Points...)
		p.state = AwaitingTime
		return Step{Event: event}

	case model.TimeRow:
		if p.state != AwaitingTime {
			return Step{Event: Orphan}
		}
		step := Step{Event: Paired}
		step.Entries, step.Truncated = zip(p.pending, row.Times)
		p.pending = nil
		p.state = Idle
		return step
	}

	return Step{Event: Ignored}
}

// Stats counts the events seen while pairing a table.
type Stats struct {
	Paired    int
	Replaced  int
	Orphans   int
	Ignored   int
	Truncated int
}

// Pair runs a fresh Pairer over rows and returns every entry produced,
// in row order.
func Pair(rows []model.ClassifiedRow) ([]model.PairedEntry, Stats) {
	var (
		p       Pairer
		entries []model.PairedEntry
		stats   Stats
	)

	for _, row := range rows {
		step := p.Feed(row)
		switch step.Event {
		case Paired:
			stats.Paired++
		case Replaced:
			stats.Replaced++
		case Orphan:
			stats.Orphans++
		case Ignored:
			stats.Ignored++
		}
		stats.Truncated += step.Truncated
		entries = append(entries, step.Entries...)
	}

	return entries, stats
}

// zip pairs points and times by position up to the shorter length.
func zip(points []int, times []model.TimeOfDay) ([]model.PairedEntry, int) {
	n := min(len(points), len(times))
	entries := make([]model.PairedEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = model.PairedEntry{Point: points[i], Time: times[i]}
	}
	return entries, len(points) + len(times) - 2*n
}
