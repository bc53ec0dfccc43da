package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cybertec-postgresql/pgscan/internal/errors"
	"github.com/cybertec-postgresql/pgscan/internal/logger"
	"github.com/cybertec-postgresql/pgscan/internal/pgenc"
	"github.com/cybertec-postgresql/pgscan/internal/report"
	"github.com/cybertec-postgresql/pgscan/internal/scan"
	"github.com/cybertec-postgresql/pgscan/internal/scanerr"
)

// Tokenize implements the tokenize command: scan each of paths (or stdin
// when paths is ["-"]) and write the resulting token stream to out in the
// requested format.
func Tokenize(ctx context.Context, c *Config, paths []string, out io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	enc, closeEnc, err := resolveEncoding(ctx, c)
	if err != nil {
		return err
	}
	defer closeEnc()

	formatter, err := report.GetFormatter(report.FormatType(c.OutputFormat))
	if err != nil {
		return err
	}

	flags := Flags(c)
	for _, path := range paths {
		src, name, err := readSource(path)
		if err != nil {
			return err
		}

		logger.Debugf("pgscan: tokenizing %s (%d bytes)", name, len(src))

		res := &report.Result{File: name}
		warnings := &scanerr.CollectingReporter{}
		sc := scan.New(src, flags, enc, warnings)
		for {
			tok, tokErr := sc.Next()
			if tokErr != nil {
				res.Err = tokErr.(*scanerr.ScanError)
				break
			}
			if tok.Kind == scan.EOF {
				break
			}
			res.Tokens = append(res.Tokens, tok)
		}
		sc.Finish()
		res.Warnings = warnings.Warnings

		if err := formatter.Format(out, res); err != nil {
			return fmt.Errorf("failed to format tokens for %s: %w", name, err)
		}
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// readSource reads path's contents, or stdin when path is "-".
func readSource(path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", errors.NewParseError("<stdin>", 0, 0, err.Error())
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.NewParseError(path, 0, 0, err.Error())
	}
	return data, path, nil
}

// resolveEncoding picks the EncodingProvider a command should scan with:
// a live provider resolved from c.ConnectionString when one is given,
// otherwise the static default. The returned closer is always safe to
// call, even when no live connection was opened.
func resolveEncoding(ctx context.Context, c *Config) (scan.EncodingProvider, func(), error) {
	if c.ConnectionString == "" {
		return pgenc.Default, func() {}, nil
	}
	live, err := pgenc.NewLive(ctx, c.ConnectionString)
	if err != nil {
		return nil, nil, err
	}
	if err := live.Resolve(ctx); err != nil {
		live.Close()
		return nil, nil, err
	}
	return live, live.Close, nil
}
