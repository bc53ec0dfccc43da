package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/cybertec-postgresql/pgscan/internal/pgenc"
)

// CheckEncoding implements the check-encoding command: connect to
// connString, resolve its live encoding settings once, and print them.
func CheckEncoding(ctx context.Context, connString string, out io.Writer) error {
	if connString == "" {
		return fmt.Errorf("check-encoding requires --connection")
	}

	live, err := pgenc.NewLive(ctx, connString)
	if err != nil {
		return err
	}
	defer live.Close()

	if err := live.Resolve(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "server_is_utf8: %v\n", live.ServerIsUTF8())
	fmt.Fprintf(out, "client_only_encoding: %v\n", live.ClientOnlyEncoding())
	fmt.Fprintf(out, "standard_conforming_strings: %v\n", live.StandardConformingStrings())
	fmt.Fprintf(out, "backslash_quote: %s\n", live.BackslashQuotePolicy())
	return nil
}
