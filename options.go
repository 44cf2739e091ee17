package rogain

import (
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/tsawler/rogain/locate"
)

// ExtractOptions holds configuration for record extraction.
type ExtractOptions struct {
	// Block detection
	signature locate.Signature

	// Row classification
	endMarkers []string

	// Loading
	encoding encoding.Encoding // nil means detect from the page

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		signature: locate.DefaultSignature,
		encoding:  nil,
		logger:    nil, // silent
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		signature: o.signature,
		encoding:  o.encoding,
		logger:    o.logger,
	}

	if o.endMarkers != nil {
		newOpts.endMarkers = make([]string, len(o.endMarkers))
		copy(newOpts.endMarkers, o.endMarkers)
	}

	return newOpts
}
