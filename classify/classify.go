// Package classify decides what a results row holds from the shape of its
// cell text.
//
// A row is a points row when every non-empty cell is an end marker or ends
// in a parenthesized integer, and a time row when every non-empty cell is a
// clock time. Anything else is unclassified. Classification never looks at
// neighbouring rows.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/rogain/model"
)

// DefaultEndMarker is the token closing a team's course on the results page.
const DefaultEndMarker = "META"

var (
	pointsPattern = regexp.MustCompile(`^.*\(\d+\)`)
	clockPattern  = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)
)

// Classifier classifies rows. The zero value uses DefaultEndMarker.
type Classifier struct {
	endMarkers []string
}

// New returns a Classifier recognizing the given end markers, compared
// case-insensitively. With no markers, DefaultEndMarker is used.
func New(endMarkers ...string) *Classifier {
	c := &Classifier{}
	for _, m := range endMarkers {
		if m = strings.TrimSpace(m); m != "" {
			c.endMarkers = append(c.endMarkers, m)
		}
	}
	return c
}

// IsEndMarker reports whether s is one of the classifier's end markers.
func (c *Classifier) IsEndMarker(s string) bool {
	if c == nil || len(c.endMarkers) == 0 {
		return strings.EqualFold(s, DefaultEndMarker)
	}
	for _, m := range c.endMarkers {
		if strings.EqualFold(s, m) {
			return true
		}
	}
	return false
}

// Classify returns the classification of a row's non-label cell values.
func (c *Classifier) Classify(values []string) model.ClassifiedRow {
	if !hasContent(values) {
		return model.ClassifiedRow{Kind: model.Unclassified}
	}
	if row, ok := c.Points(values); ok {
		return row
	}
	if row, ok := Times(values); ok {
		return row
	}
	return model.ClassifiedRow{Kind: model.Unclassified}
}

// Points tests the points shape. It reports false when any non-empty cell is
// neither an end marker nor points-shaped, or when no value could be read.
func (c *Classifier) Points(values []string) (model.ClassifiedRow, bool) {
	row := model.ClassifiedRow{Kind: model.PointsRow}

	for _, v := range values {
		if v == "" || c.IsEndMarker(v) {
			continue
		}
		if !pointsPattern.MatchString(v) {
			return model.ClassifiedRow{}, false
		}
		p, ok := pointValue(v)
		if !ok {
			row.Dropped++
			continue
		}
		row.Points = append(row.Points, p)
	}

	if len(row.Points) == 0 {
		return model.ClassifiedRow{}, false
	}
	return row, true
}

// Times tests the clock shape. Cells that match the shape but hold an
// out-of-range time are dropped without disqualifying the row.
func Times(values []string) (model.ClassifiedRow, bool) {
	row := model.ClassifiedRow{Kind: model.TimeRow, Times: make([]model.TimeOfDay, 0, len(values))}

	for _, v := range values {
		if v == "" {
			continue
		}
		if !clockPattern.MatchString(v) {
			return model.ClassifiedRow{}, false
		}
		t, err := ParseTime(v)
		if err != nil {
			row.Dropped++
			continue
		}
		row.Times = append(row.Times, t)
	}

	return row, true
}

// ParseTime parses a clock cell. H:MM:SS is read as is; M:SS is read as
// minutes and seconds past hour zero.
func ParseTime(s string) (model.TimeOfDay, error) {
	if strings.Count(s, ":") == 1 {
		s = "0:" + s
	}
	return model.ParseClock(s)
}

// pointValue reads the integer between the last "(" and the closing ")".
func pointValue(v string) (int, bool) {
	i := strings.LastIndex(v, "(")
	if i < 0 {
		return 0, false
	}
	digits := strings.ReplaceAll(v[i+1:], ")", "")
	p, err := strconv.Atoi(digits)
	if err != nil || p < 0 {
		return 0, false
	}
	return p, true
}

func hasContent(values []string) bool {
	for _, v := range values {
		if v != "" {
			return true
		}
	}
	return false
}
