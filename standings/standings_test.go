package standings

import (
	"reflect"
	"testing"

	"github.com/tsawler/rogain/model"
)

func rec(team string, minute, points, total int) model.Record {
	return model.Record{Team: team, Points: points, Time: model.TimeOfDay(minute * 60), TotalPoints: total}
}

var sample = []model.Record{
	rec("ALPHA", 10, 3, 3),
	rec("ALPHA", 30, 5, 8),
	rec("BRAVO", 12, 8, 8),
	rec("BRAVO", 50, 2, 10),
	rec("CHARLIE", 20, 1, 1),
	rec("DELTA", 90, 4, 4),
}

func TestAt(t *testing.T) {
	got := At(sample, model.TimeOfDay(40*60))

	want := []Standing{
		{Rank: 1, Team: "ALPHA", TotalPoints: 8, Checkpoints: 2, LastTime: 30 * 60},
		{Rank: 1, Team: "BRAVO", TotalPoints: 8, Checkpoints: 1, LastTime: 12 * 60},
		{Rank: 3, Team: "CHARLIE", TotalPoints: 1, Checkpoints: 1, LastTime: 20 * 60},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("At(40m) =\n%+v\nwant\n%+v", got, want)
	}
}

func TestAt_EndOfDay(t *testing.T) {
	got := At(sample, model.TimeOfDay(86399))
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].Team != "BRAVO" || got[0].TotalPoints != 10 || got[0].Rank != 1 {
		t.Errorf("leader = %+v", got[0])
	}
	if got[3].Team != "CHARLIE" || got[3].Rank != 4 {
		t.Errorf("last = %+v", got[3])
	}
}

func TestAt_BeforeStart(t *testing.T) {
	if got := At(sample, 0); len(got) != 0 {
		t.Errorf("At(0) = %+v, want empty", got)
	}
}

func TestAt_BoundaryInclusive(t *testing.T) {
	got := At(sample, model.TimeOfDay(10*60))
	if len(got) != 1 || got[0].Team != "ALPHA" || got[0].TotalPoints != 3 {
		t.Errorf("At(10m) = %+v", got)
	}
}

func TestTeamsAndFilter(t *testing.T) {
	teams := Teams(sample)
	if !reflect.DeepEqual(teams, []string{"ALPHA", "BRAVO", "CHARLIE", "DELTA"}) {
		t.Errorf("Teams() = %v", teams)
	}

	bravo := Filter(sample, "BRAVO")
	if len(bravo) != 2 || bravo[1].TotalPoints != 10 {
		t.Errorf("Filter(BRAVO) = %+v", bravo)
	}
	if got := Filter(sample, "ZULU"); len(got) != 0 {
		t.Errorf("Filter(ZULU) = %+v", got)
	}
}
