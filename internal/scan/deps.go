package scan

// EncodingProvider answers the current_server_encoding / client_only_encoding
// queries the scanner needs from its environment. internal/pgenc provides
// both a static default and a live implementation backed by a PostgreSQL
// connection; the scanner only ever depends on this narrow interface so
// it never needs to import pgx itself.
type EncodingProvider interface {
	// ServerIsUTF8 reports whether the current server encoding is UTF8.
	// addUnicode raises UnicodeEscapeNonUTF8ServerEncoding for any
	// codepoint above 0x7F when this is false.
	ServerIsUTF8() bool

	// ClientOnlyEncoding reports whether the current client encoding is a
	// "client-only" encoding, i.e. one PostgreSQL never uses server-side.
	// checkBackslashQuote consults this when BackslashQuote is
	// scanconfig.BackslashQuoteSafeEncoding.
	ClientOnlyEncoding() bool
}

// defaultEncoding is used whenever a caller doesn't supply an
// EncodingProvider: UTF8 server encoding, and a client encoding that is
// not client-only, matching pgscan's default assumption of UTF-8-bearing
// input with no live connection to query.
type defaultEncoding struct{}

func (defaultEncoding) ServerIsUTF8() bool       { return true }
func (defaultEncoding) ClientOnlyEncoding() bool { return false }

// DefaultEncoding is the zero-configuration EncodingProvider.
var DefaultEncoding EncodingProvider = defaultEncoding{}
