// Package pgenc supplies the scan.EncodingProvider implementations pgscan
// wires into its scanner: a zero-configuration Static default and a Live
// variant backed by a running PostgreSQL server.
package pgenc

// Static is a fixed-answer scan.EncodingProvider for callers that never
// connect to a server: a stand-in for internal/scan.DefaultEncoding whose
// two answers the caller chooses. The CLI uses Default whenever no
// --connection is given.
type Static struct {
	ServerUTF8 bool
	ClientOnly bool
}

// ServerIsUTF8 implements scan.EncodingProvider.
func (s Static) ServerIsUTF8() bool { return s.ServerUTF8 }

// ClientOnlyEncoding implements scan.EncodingProvider.
func (s Static) ClientOnlyEncoding() bool { return s.ClientOnly }

// Default is the assumption pgscan makes with no --connection flag: UTF8
// server encoding, and a client encoding that is not client-only.
var Default = Static{ServerUTF8: true, ClientOnly: false}

// clientOnlyEncodings lists the PostgreSQL client_encoding names that can
// never appear as a server_encoding, mirroring the small fixed set
// PostgreSQL's own backslash_quote=safe_encoding check consults (SJIS,
// BIG5, GBK, UHC, and the other client-only Far-East encodings).
var clientOnlyEncodings = map[string]bool{
	"SJIS":           true,
	"SHIFT_JIS_2004": true,
	"BIG5":           true,
	"GBK":            true,
	"UHC":            true,
	"JOHAB":          true,
}

func isClientOnly(name string) bool {
	return clientOnlyEncodings[name]
}
