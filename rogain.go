// Package rogain extracts per-team checkpoint progress from rogaine results
// pages and flattens it into a time series of (team, points, time, running
// total) records.
//
// Basic usage:
//
//	records, warnings, err := rogain.Open("results.html").Records()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rogain.FormatWarnings(warnings))
//	}
//
// With options:
//
//	records, _, err := rogain.Open("results.html").
//	    MarkerAttr("width", "1381px").
//	    LabelCell("c13").
//	    EndMarkers("META", "FIN").
//	    Records()
//
// Malformed blocks and rows never stop extraction. They are skipped and
// reported as warnings; only failing to load the page is an error.
//
// The pipeline stages are also usable on their own: locate finds team
// blocks, classify tags rows, pairing matches points with times and scoring
// keeps running totals.
package rogain

import (
	"io"

	"github.com/tsawler/rogain/model"
)

// Open returns an Extractor reading the HTML file at filename.
// The file is read on the first terminal operation.
//
// Example:
//
//	records, warnings, err := rogain.Open("results.html").Records()
func Open(filename string) *Extractor {
	return &Extractor{
		source:  &source{filename: filename},
		options: defaultOptions(),
	}
}

// FromReader returns an Extractor reading HTML from r.
// The reader is consumed once, on the first terminal operation.
func FromReader(r io.Reader) *Extractor {
	return &Extractor{
		source:  &source{r: r},
		options: defaultOptions(),
	}
}

// FromDocument returns an Extractor over an already loaded document.
func FromDocument(doc *model.Document) *Extractor {
	return &Extractor{
		source:  &source{doc: doc},
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := rogain.Must(rogain.Open("results.html").Document())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords is a helper that wraps a call to Records() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	records := rogain.MustRecords(rogain.Open("results.html").Records())
func MustRecords[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
