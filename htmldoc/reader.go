// Package htmldoc loads HTML results pages into a model.Document.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"github.com/tsawler/rogain/model"
)

// Reader provides access to the table structure of an HTML document.
type Reader struct {
	doc   *html.Node
	title string
}

// Open opens an HTML file for reading. The character encoding is taken
// from the document's meta tags, falling back to content sniffing.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader, detecting its encoding.
func OpenReader(r io.Reader) (*Reader, error) {
	utf8Reader, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	return parse(utf8Reader)
}

// OpenReaderEncoding parses HTML from an io.Reader using a known encoding,
// for pages that declare the wrong charset.
func OpenReaderEncoding(r io.Reader, enc encoding.Encoding) (*Reader, error) {
	return parse(enc.NewDecoder().Reader(r))
}

func parse(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	if title := findElement(doc, atom.Title); title != nil {
		reader.title = getTextContent(title)
	}
	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the text of the <title> element.
func (r *Reader) Title() string {
	return r.title
}

// Document returns the document's tables in document order.
// Rows and cells nested inside a table are listed with it, so a nested
// table's rows appear both under the outer table and under its own entry.
func (r *Reader) Document() *model.Document {
	doc := model.NewDocument()
	doc.Title = r.title

	walkElements(r.doc, atom.Table, func(n *html.Node) {
		doc.AddTable(parseTable(n))
	})

	return doc
}

// parseTable converts a <table> element into a model.Table.
func parseTable(n *html.Node) *model.Table {
	table := model.NewTable(attrMap(n))

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, atom.Tr, func(tr *html.Node) {
			table.Rows = append(table.Rows, parseTableRow(tr))
		})
	}

	return table
}

// parseTableRow collects every <td> below the row.
func parseTableRow(tr *html.Node) model.Row {
	row := model.Row{Cells: make([]model.Cell, 0)}

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, atom.Td, func(td *html.Node) {
			row.Cells = append(row.Cells, model.Cell{
				ID:   getAttr(td, "id"),
				Text: getTextContent(td),
			})
		})
	}

	return row
}

// walkElements calls fn for n and every descendant element with the given
// tag, in document order.
func walkElements(n *html.Node, tag atom.Atom, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.DataAtom) {
			return
		}
		if n.DataAtom == tag {
			fn(n)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, tag, fn)
	}
}

// attrMap returns the node's attributes keyed by name.
func attrMap(n *html.Node) map[string]string {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Math, atom.Iframe, atom.Object, atom.Embed:
		return true
	}
	return false
}

// findElement finds the first element with the given tag.
func findElement(n *html.Node, tag atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tag); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent joins the node's text descendants, each trimmed of
// surrounding whitespace, with nothing between them.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(strings.TrimSpace(n.Data))
	}
	if n.Type == html.ElementNode && shouldSkipElement(n.DataAtom) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
