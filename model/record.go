package model

// RowKind identifies what a results row holds.
type RowKind int

const (
	// Unclassified rows carry no data (headers, separators, anything else).
	Unclassified RowKind = iota
	// PointsRow rows list the point value of each checkpoint reached.
	PointsRow
	// TimeRow rows list the clock time each checkpoint was reached.
	TimeRow
)

// String returns the string representation of the row kind.
func (k RowKind) String() string {
	switch k {
	case PointsRow:
		return "points"
	case TimeRow:
		return "time"
	default:
		return "unclassified"
	}
}

// ClassifiedRow is the result of classifying one row.
// Only the slice matching Kind is set.
type ClassifiedRow struct {
	Kind   RowKind
	Points []int
	Times  []TimeOfDay

	// Dropped counts cells that had the row's shape but yielded no value.
	Dropped int
}

// TeamBlock pairs a team name with the results table following its marker.
type TeamBlock struct {
	Team    string
	Results *Table

	// Marker is the document index of the marker table.
	Marker int
}

// PairedEntry is one checkpoint: the i-th point of a points row and the
// i-th time of the row completing it.
type PairedEntry struct {
	Point int
	Time  TimeOfDay
}

// Record is the unit handed to consumers of the extracted time series.
type Record struct {
	Team        string    `json:"team"`
	Points      int       `json:"points"`
	Time        TimeOfDay `json:"time"`
	TotalPoints int       `json:"total_points"`
}
