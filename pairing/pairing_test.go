package pairing

import (
	"testing"

	"github.com/tsawler/rogain/model"
)

func points(p ...int) model.ClassifiedRow {
	return model.ClassifiedRow{Kind: model.PointsRow, Points: p}
}

func times(t *testing.T, s ...string) model.ClassifiedRow {
	t.Helper()
	row := model.ClassifiedRow{Kind: model.TimeRow}
	for _, v := range s {
		tod, err := model.ParseClock(v)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", v, err)
		}
		row.Times = append(row.Times, tod)
	}
	return row
}

var unclassified = model.ClassifiedRow{Kind: model.Unclassified}

func TestFeed_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		setup     []model.ClassifiedRow
		row       func(*testing.T) model.ClassifiedRow
		wantEvent Event
		wantState State
	}{
		{"idle + points", nil, func(*testing.T) model.ClassifiedRow { return points(1) }, Buffered, AwaitingTime},
		{"awaiting + points", []model.ClassifiedRow{points(1)}, func(*testing.T) model.ClassifiedRow { return points(2) }, Replaced, AwaitingTime},
		{"awaiting + time", []model.ClassifiedRow{points(1)}, func(t *testing.T) model.ClassifiedRow { return times(t, "0:01:00") }, Paired, Idle},
		{"idle + time", nil, func(t *testing.T) model.ClassifiedRow { return times(t, "0:01:00") }, Orphan, Idle},
		{"idle + unclassified", nil, func(*testing.T) model.ClassifiedRow { return unclassified }, Ignored, Idle},
		{"awaiting + unclassified", []model.ClassifiedRow{points(1)}, func(*testing.T) model.ClassifiedRow { return unclassified }, Ignored, AwaitingTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pairer
			for _, r := range tt.setup {
				p.Feed(r)
			}
			step := p.Feed(tt.row(t))
			if step.Event != tt.wantEvent {
				t.Errorf("Event = %v, want %v", step.Event, tt.wantEvent)
			}
			if p.State() != tt.wantState {
				t.Errorf("State = %v, want %v", p.State(), tt.wantState)
			}
		})
	}
}

func TestPair_Truncation(t *testing.T) {
	entries, stats := Pair([]model.ClassifiedRow{
		points(3, 5, 7),
		times(t, "0:10:00", "0:20:00"),
	})

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Point != 3 || entries[1].Point != 5 {
		t.Errorf("points = %d,%d, want 3,5", entries[0].Point, entries[1].Point)
	}
	if entries[1].Time.String() != "00:20:00" {
		t.Errorf("entries[1].Time = %s, want 00:20:00", entries[1].Time)
	}
	if stats.Truncated != 1 {
		t.Errorf("Truncated = %d, want 1", stats.Truncated)
	}
}

func TestPair_OrphanTimeRow(t *testing.T) {
	entries, stats := Pair([]model.ClassifiedRow{
		times(t, "0:05:00"),
		points(2),
		times(t, "0:10:00"),
	})

	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Point != 2 || entries[0].Time.String() != "00:10:00" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if stats.Orphans != 1 || stats.Paired != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestPair_ReplacedAndInterleaved(t *testing.T) {
	entries, stats := Pair([]model.ClassifiedRow{
		points(1),
		unclassified,
		points(9, 8),
		unclassified,
		times(t, "1:00:00", "2:00:00"),
		times(t, "3:00:00"), // orphan: buffer was cleared by the pairing above
	})

	if len(entries) != 2 || entries[0].Point != 9 || entries[1].Point != 8 {
		t.Fatalf("entries = %+v, want points 9,8", entries)
	}
	if stats.Replaced != 1 || stats.Orphans != 1 || stats.Ignored != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestFeed_PendingIsCopied(t *testing.T) {
	src := []int{4, 6}
	var p Pairer
	p.Feed(points(src...))
	src[0] = 100

	step := p.Feed(times(t, "0:15:00", "0:32:10"))
	if step.Entries[0].Point != 4 {
		t.Errorf("pending points aliased caller slice: got %d", step.Entries[0].Point)
	}
}
