// Package standings ranks teams by their running total at a point in time.
package standings

import (
	"sort"

	"github.com/tsawler/rogain/model"
)

// Standing is one team's position at a given time.
type Standing struct {
	Rank        int             `json:"rank"`
	Team        string          `json:"team"`
	TotalPoints int             `json:"total_points"`
	Checkpoints int             `json:"checkpoints"`
	LastTime    model.TimeOfDay `json:"last_time"`
}

// At ranks every team with at least one record at or before t, using the
// total of its latest such record. Teams on equal totals share the best
// rank, and the next rank skips accordingly (1, 2, 2, 4). The result is
// ordered by rank, then team name.
func At(records []model.Record, t model.TimeOfDay) []Standing {
	byTeam := make(map[string]*Standing)

	for _, r := range records {
		if r.Time > t {
			continue
		}
		s, ok := byTeam[r.Team]
		if !ok {
			s = &Standing{Team: r.Team}
			byTeam[r.Team] = s
		}
		s.Checkpoints++
		if s.Checkpoints == 1 || r.Time >= s.LastTime {
			s.LastTime = r.Time
			s.TotalPoints = r.TotalPoints
		}
	}

	out := make([]Standing, 0, len(byTeam))
	for _, s := range byTeam {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].Team < out[j].Team
	})

	for i := range out {
		if i > 0 && out[i].TotalPoints == out[i-1].TotalPoints {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}

// Teams returns the distinct team names in first-appearance order.
func Teams(records []model.Record) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, r := range records {
		if !seen[r.Team] {
			seen[r.Team] = true
			teams = append(teams, r.Team)
		}
	}
	return teams
}

// Filter returns the records of the named team, in order.
func Filter(records []model.Record, team string) []model.Record {
	out := make([]model.Record, 0)
	for _, r := range records {
		if r.Team == team {
			out = append(out, r)
		}
	}
	return out
}
