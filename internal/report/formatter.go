// Package report renders a pgscan token stream for the tokenize command: a
// small Formatter interface, a FormatType enum, and a lookup function
// callers validate user-supplied format names against.
package report

import (
	"fmt"
	"io"

	"github.com/cybertec-postgresql/pgscan/internal/scan"
	"github.com/cybertec-postgresql/pgscan/internal/scanerr"
)

// FormatType identifies a supported output format.
type FormatType string

const (
	FormatJSON FormatType = "json"
	FormatText FormatType = "text"
)

// Result is everything the tokenize command collects from one scanned
// source: token stream, any warnings, and a terminal error if the scan
// stopped early.
type Result struct {
	File     string
	Tokens   []scan.Token
	Warnings []*scanerr.Warning
	Err      *scanerr.ScanError
}

// Formatter renders a Result to a writer.
type Formatter interface {
	Format(w io.Writer, res *Result) error
	Name() string
}

// GetFormatter returns the Formatter for ft, or an error if ft is not one
// of the supported formats.
func GetFormatter(ft FormatType) (Formatter, error) {
	if !ValidFormat(string(ft)) {
		return nil, fmt.Errorf("unsupported format: %s (supported: %v)", ft, SupportedFormats())
	}
	switch ft {
	case FormatJSON:
		return JSONFormatter{}, nil
	default:
		return TextFormatter{}, nil
	}
}

// ValidFormat reports whether name names a supported format.
func ValidFormat(name string) bool {
	switch FormatType(name) {
	case FormatJSON, FormatText:
		return true
	default:
		return false
	}
}

// SupportedFormats lists every format name GetFormatter accepts.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatText)}
}
