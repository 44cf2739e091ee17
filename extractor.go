package rogain

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/text/encoding"

	"github.com/tsawler/rogain/classify"
	"github.com/tsawler/rogain/htmldoc"
	"github.com/tsawler/rogain/locate"
	"github.com/tsawler/rogain/model"
	"github.com/tsawler/rogain/pairing"
	"github.com/tsawler/rogain/scoring"
)

// ErrNoSource is returned when an Extractor has nothing to read.
var ErrNoSource = errors.New("no source specified")

// source loads the document once and shares it between an Extractor and
// every Extractor derived from it.
type source struct {
	filename string
	r        io.Reader

	once sync.Once
	doc  *model.Document
	err  error
}

// load parses the page. The encoding of the first call wins.
func (s *source) load(enc encoding.Encoding) (*model.Document, error) {
	s.once.Do(func() {
		if s.doc != nil {
			return
		}
		s.doc, s.err = s.read(enc)
	})
	return s.doc, s.err
}

func (s *source) read(enc encoding.Encoding) (*model.Document, error) {
	var (
		hr  *htmldoc.Reader
		err error
	)

	switch {
	case s.r != nil && enc != nil:
		hr, err = htmldoc.OpenReaderEncoding(s.r, enc)
	case s.r != nil:
		hr, err = htmldoc.OpenReader(s.r)
	case s.filename != "":
		hr, err = openFile(s.filename, enc)
	default:
		return nil, ErrNoSource
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML: %w", err)
	}
	defer hr.Close()

	return hr.Document(), nil
}

func openFile(filename string, enc encoding.Encoding) (*htmldoc.Reader, error) {
	if enc == nil {
		return htmldoc.Open(filename)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return htmldoc.OpenReaderEncoding(f, enc)
}

// Extractor provides a fluent interface for extracting records from a
// results page. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	source *source

	// Configuration
	options ExtractOptions
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		source:  e.source,
		options: e.options.clone(),
	}
}

// MarkerAttr sets the attribute and value that identify a team marker table.
//
// Example:
//
//	rogain.Open("results.html").MarkerAttr("width", "1381px").Records()
func (e *Extractor) MarkerAttr(key, value string) *Extractor {
	newExt := e.clone()
	newExt.options.signature.Attr = key
	newExt.options.signature.Value = value
	return newExt
}

// LabelCell sets the id of the marker cell holding the team name.
func (e *Extractor) LabelCell(id string) *Extractor {
	newExt := e.clone()
	newExt.options.signature.LabelCellID = id
	return newExt
}

// EndMarkers sets the tokens that close a points row, replacing the
// default "META". Matching is case-insensitive.
func (e *Extractor) EndMarkers(markers ...string) *Extractor {
	newExt := e.clone()
	newExt.options.endMarkers = append([]string(nil), markers...)
	return newExt
}

// Encoding forces the page's character encoding instead of detecting it.
func (e *Extractor) Encoding(enc encoding.Encoding) *Extractor {
	newExt := e.clone()
	newExt.options.encoding = enc
	return newExt
}

// Logger makes extraction log each skip at debug level and a summary at
// info level.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// Document returns the loaded page.
func (e *Extractor) Document() (*model.Document, error) {
	if e.source == nil {
		return nil, ErrNoSource
	}
	return e.source.load(e.options.encoding)
}

// Blocks returns the team blocks found in the page.
func (e *Extractor) Blocks() ([]model.TeamBlock, []Warning, error) {
	doc, err := e.Document()
	if err != nil {
		return nil, nil, err
	}
	blocks, skips := locate.Locate(doc, e.options.signature)
	return blocks, skipWarnings(skips), nil
}

// Records extracts the record stream: for every team block in document
// order, one record per paired checkpoint in row order.
//
// The returned warnings describe everything that was skipped. The error is
// non-nil only if the page could not be loaded.
func (e *Extractor) Records() ([]model.Record, []Warning, error) {
	res, err := e.Run()
	if err != nil {
		return nil, nil, err
	}
	return res.Records, res.Warnings, nil
}

// Run extracts records and returns them with processing counts.
func (e *Extractor) Run() (*Result, error) {
	doc, err := e.Document()
	if err != nil {
		return nil, err
	}

	res := Extract(doc, e.options.signature, classify.New(e.options.endMarkers...))
	if l := e.options.logger; l != nil {
		res.log(l)
	}
	return res, nil
}

// Result is the outcome of one extraction.
type Result struct {
	Records  []model.Record
	Warnings []Warning

	Teams        int // team blocks processed
	Rows         int // rows read across all results tables
	Unclassified int // rows that were neither points nor times
}

// Extract runs the pipeline over doc. It never fails: whatever cannot be
// recovered is reported in the result's warnings.
func Extract(doc *model.Document, sig locate.Signature, c *classify.Classifier) *Result {
	res := &Result{Records: make([]model.Record, 0)}

	blocks, skips := locate.Locate(doc, sig)
	res.Warnings = append(res.Warnings, skipWarnings(skips)...)

	for _, b := range blocks {
		entries := res.pairBlock(b, c)
		res.Records = append(res.Records, scoring.Accumulate(b.Team, entries)...)
		res.Teams++
	}

	return res
}

// pairBlock classifies and pairs one results table. A fresh Pairer is used
// for every block.
func (res *Result) pairBlock(b model.TeamBlock, c *classify.Classifier) []model.PairedEntry {
	var (
		p       pairing.Pairer
		entries []model.PairedEntry
	)

	for i, row := range b.Results.Rows {
		res.Rows++
		cr := c.Classify(row.Values())
		if cr.Dropped > 0 {
			res.warn(WarnUnparsableCell, b, i, fmt.Sprintf("%d %s cell(s) could not be parsed", cr.Dropped, cr.Kind))
		}

		step := p.Feed(cr)
		switch step.Event {
		case pairing.Ignored:
			res.Unclassified++
		case pairing.Replaced:
			res.warn(WarnReplacedPointsRow, b, i, "points row replaced a pending points row")
		case pairing.Orphan:
			res.warn(WarnOrphanTimeRow, b, i, "time row without a pending points row")
		}
		if step.Truncated > 0 {
			res.warn(WarnLengthMismatch, b, i, fmt.Sprintf("points and time rows differ in length, %d value(s) dropped", step.Truncated))
		}
		entries = append(entries, step.Entries...)
	}

	return entries
}

func (res *Result) warn(kind WarningKind, b model.TeamBlock, row int, msg string) {
	res.Warnings = append(res.Warnings, Warning{
		Kind:    kind,
		Team:    b.Team,
		Table:   b.Results.Index,
		Row:     row,
		Message: msg,
	})
}

func (res *Result) log(l *slog.Logger) {
	for _, w := range res.Warnings {
		l.Debug("skipped", "kind", w.Kind.String(), "team", w.Team, "table", w.Table, "row", w.Row, "detail", w.Message)
	}
	l.Info("extraction complete",
		"teams", res.Teams,
		"records", len(res.Records),
		"rows", res.Rows,
		"unclassified_rows", res.Unclassified,
		"warnings", len(res.Warnings),
	)
}
