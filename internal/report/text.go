package report

import (
	"fmt"
	"io"

	"github.com/cybertec-postgresql/pgscan/internal/scan"
)

// TextFormatter renders a Result as one line per token, in the style of
// PostgreSQL's own scan-only debug dumps: <pos>\t<kind>\t<text>.
type TextFormatter struct{}

// Name implements Formatter.
func (TextFormatter) Name() string { return string(FormatText) }

// Format implements Formatter.
func (TextFormatter) Format(w io.Writer, res *Result) error {
	if res.File != "" {
		if _, err := fmt.Fprintf(w, "%s:\n", res.File); err != nil {
			return err
		}
	}
	for _, tok := range res.Tokens {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", tok.Pos, kindName(tok.Kind), tokenText(tok)); err != nil {
			return err
		}
	}
	for _, warn := range res.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn.String()); err != nil {
			return err
		}
	}
	if res.Err != nil {
		if _, err := fmt.Fprintf(w, "error: %s\n", res.Err.Error()); err != nil {
			return err
		}
	}
	return nil
}

func tokenText(tok scan.Token) string {
	switch tok.Kind {
	case scan.ICONST:
		return fmt.Sprintf("%d", tok.Int)
	case scan.PARAM:
		return fmt.Sprintf("$%d", tok.Int)
	case scan.Keyword:
		if tok.Keyword != nil {
			return tok.Keyword.Name
		}
		return tok.Text
	default:
		return tok.Text
	}
}

// kindName names a token's kind for display, shared by both formatters.
func kindName(k scan.TokenKind) string {
	switch k {
	case scan.EOF:
		return "EOF"
	case scan.IDENT:
		return "IDENT"
	case scan.Keyword:
		return "KEYWORD"
	case scan.ICONST:
		return "ICONST"
	case scan.FCONST:
		return "FCONST"
	case scan.SCONST:
		return "SCONST"
	case scan.BCONST:
		return "BCONST"
	case scan.XCONST:
		return "XCONST"
	case scan.PARAM:
		return "PARAM"
	case scan.TYPECAST:
		return "TYPECAST"
	case scan.OP:
		return "OP"
	default:
		if k >= 0 && k < 256 {
			return "SELF"
		}
		return "UNKNOWN"
	}
}
