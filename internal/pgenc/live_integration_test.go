//go:build integration

package pgenc_test

import (
	"context"
	"testing"

	"github.com/cybertec-postgresql/pgscan/internal/pgenc"
	"github.com/cybertec-postgresql/pgscan/internal/scan"
	"github.com/cybertec-postgresql/pgscan/internal/scanconfig"
	"github.com/cybertec-postgresql/pgscan/internal/testutil"
	"github.com/jackc/pgx/v5"
)

// TestLiveEncodingMatchesFreshContainer confirms a fresh, unconfigured
// PostgreSQL container reports the same defaults pgenc.Default assumes.
func TestLiveEncodingMatchesFreshContainer(t *testing.T) {
	connString, cleanup := testutil.SetupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	live, err := pgenc.NewLive(ctx, connString)
	if err != nil {
		t.Fatalf("NewLive: %v", err)
	}
	defer live.Close()

	if err := live.Resolve(ctx); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !live.ServerIsUTF8() {
		t.Error("expected fresh container to report UTF8 server encoding")
	}
	if !live.StandardConformingStrings() {
		t.Error("expected fresh container to have standard_conforming_strings on")
	}
}

// TestEscapeStringRoundTripsAgainstServer scans a handful of E'' literals
// with internal/scan and confirms the decoded SCONST payload matches what
// the live server itself returns for "SELECT <literal>". This is the
// differential oracle: pgscan's decoder must agree with PostgreSQL's own.
func TestEscapeStringRoundTripsAgainstServer(t *testing.T) {
	connString, cleanup := testutil.SetupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer conn.Close(ctx)

	cases := []string{
		`E'plain text'`,
		`E'tab\there'`,
		`E'AB'`,
		`E'\U0001F600'`,
		`E'quote''s here'`,
	}

	cfg := scanconfig.Default()
	for _, src := range cases {
		sc := scan.New([]byte(src), cfg, pgenc.Default, nil)
		tok, err := sc.Next()
		sc.Finish()
		if err != nil {
			t.Fatalf("scan %q: %v", src, err)
		}
		if tok.Kind != scan.SCONST {
			t.Fatalf("scan %q: got kind %v, want SCONST", src, tok.Kind)
		}

		var serverValue string
		if err := conn.QueryRow(ctx, "SELECT "+src).Scan(&serverValue); err != nil {
			t.Fatalf("server eval %q: %v", src, err)
		}
		if tok.Text != serverValue {
			t.Errorf("scan(%q) = %q, server = %q", src, tok.Text, serverValue)
		}
	}
}
