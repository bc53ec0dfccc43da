package scan

import "github.com/cybertec-postgresql/pgscan/internal/keyword"

// TokenKind is the lexical category of a Token.
//
// Values below 256 are self/other byte tokens whose Kind is the token's own
// byte value, matching scan.l's convention of returning the byte itself
// for single-character punctuation and unrecognized bytes. Named
// multi-byte token kinds start at 256 so they can never collide with a
// byte value.
type TokenKind int

// EOF is returned once the input is fully consumed.
const EOF TokenKind = -1

const (
	IDENT TokenKind = 256 + iota
	// Keyword is used for any recognized keyword; Token.Keyword carries the
	// specific keyword.Info (kind + canonical name).
	Keyword
	ICONST
	FCONST
	SCONST
	BCONST
	XCONST
	PARAM
	TYPECAST
	OP
)

// Token is a tagged union of a token's kind and payload. Only the fields
// relevant to Kind are populated; the rest are zero.
type Token struct {
	Kind TokenKind
	Pos  int // byte offset of the token's first byte

	// Text carries: IDENT's downcased/truncated name, FCONST/SCONST/
	// BCONST/XCONST's decoded (or, for FCONST, verbatim) text, OP's
	// operator text, a self/other byte token's single-byte string, the
	// source text of ICONST and PARAM (e.g. "42", "$1"), and "::" for
	// TYPECAST. It is empty for Keyword tokens.
	Text string

	// Int carries ICONST's signed 32-bit value or PARAM's parameter number.
	Int int32

	// Keyword is non-nil exactly when Kind == Keyword.
	Keyword *keyword.Info
}

// IsSelf reports whether t is a single self/other byte token, i.e. its
// Kind doubles as the byte value.
func (t Token) IsSelf() bool { return t.Kind >= 0 && t.Kind < 256 }
