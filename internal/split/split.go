// Package split implements the pgscan split command: dividing a SQL file
// into statements at top-level semicolon boundaries.
//
// A semicolon inside a string, comment, or dollar-quoted body is never
// emitted as its own self-byte token (the scanner consumes it as part of
// the enclosing literal or comment), so every ';' token Next() produces is
// already a top-level statement boundary — no separate nesting tracker is
// needed. split only reports statement boundaries, not statement
// internals such as CREATE FUNCTION body extraction.
package split

import (
	"bytes"

	"github.com/cybertec-postgresql/pgscan/internal/scan"
	"github.com/cybertec-postgresql/pgscan/internal/scanconfig"
)

// Statement is one top-level SQL statement carved out of a source file.
type Statement struct {
	Text      string
	StartPos  int // byte offset of the statement's first non-whitespace byte
	EndPos    int // byte offset one past the statement's last byte (before any trailing ';')
	StartLine int // 1-indexed
	EndLine   int // 1-indexed
}

// Split scans src and returns one Statement per top-level ';'-delimited
// chunk, plus any trailing statement not terminated by a semicolon. A
// *scanerr.ScanError from the underlying scan is returned unchanged so the
// caller can report it exactly like the tokenize command does.
func Split(src []byte, cfg scanconfig.Flags, enc scan.EncodingProvider) ([]Statement, error) {
	sc := scan.New(src, cfg, enc, nil)
	defer sc.Finish()

	lineStarts := computeLineStarts(src)

	var stmts []Statement
	start := -1 // -1 means "no pending statement yet"
	lastEnd := 0

	for {
		tok, err := sc.Next()
		if err != nil {
			return stmts, err
		}
		if tok.Kind == scan.EOF {
			break
		}
		if start < 0 {
			start = tok.Pos
		}
		if tok.IsSelf() && byte(tok.Kind) == ';' {
			stmts = append(stmts, buildStatement(src, lineStarts, start, tok.Pos))
			lastEnd = tok.Pos + 1
			start = -1
			continue
		}
		lastEnd = tok.Pos + len(tok.Text)
		if lastEnd <= tok.Pos {
			lastEnd = tok.Pos + 1
		}
	}

	if start >= 0 {
		stmts = append(stmts, buildStatement(src, lineStarts, start, lastEnd))
	}
	return stmts, nil
}

func buildStatement(src []byte, lineStarts []int, start, end int) Statement {
	if end > len(src) {
		end = len(src)
	}
	text := bytes.TrimRight(bytes.TrimSpace(src[start:end]), ";")
	return Statement{
		Text:      string(bytes.TrimSpace(text)),
		StartPos:  start,
		EndPos:    end,
		StartLine: lineForOffset(lineStarts, start),
		EndLine:   lineForOffset(lineStarts, end),
	}
}

// computeLineStarts records the byte offset each line begins at, so
// lineForOffset can binary-search a byte position to a 1-indexed line
// number without rescanning the source per statement.
func computeLineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineForOffset(lineStarts []int, offset int) int {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}
