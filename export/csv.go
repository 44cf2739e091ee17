// Package export writes extracted records to the sinks read by the
// progress dashboard: a delimited file and an SQLite database.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/tsawler/rogain/model"
)

// Header is the column layout expected by the dashboard.
var Header = []string{"Team", "Points", "Time", "Total points"}

// ErrBadHeader is returned by ReadCSV when the header does not match Header.
var ErrBadHeader = errors.New("unexpected CSV header")

// WriteCSV writes records with a header row. Times are written as HH:MM:SS.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		row := []string{
			r.Team,
			strconv.Itoa(r.Points),
			r.Time.String(),
			strconv.Itoa(r.TotalPoints),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads records written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range Header {
		if header[i] != h {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, header[i], h)
		}
	}

	var records []model.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (model.Record, error) {
	points, err := strconv.Atoi(row[1])
	if err != nil {
		return model.Record{}, fmt.Errorf("points: %w", err)
	}
	tod, err := model.ParseClock(row[2])
	if err != nil {
		return model.Record{}, fmt.Errorf("time: %w", err)
	}
	total, err := strconv.Atoi(row[3])
	if err != nil {
		return model.Record{}, fmt.Errorf("total points: %w", err)
	}
	return model.Record{Team: row[0], Points: points, Time: tod, TotalPoints: total}, nil
}
