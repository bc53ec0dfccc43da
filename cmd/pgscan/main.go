// Command pgscan tokenizes, splits, and inspects the encoding of SQL
// source text using a PostgreSQL-compatible lexical scanner.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cybertec-postgresql/pgscan/internal/cli"
	"github.com/cybertec-postgresql/pgscan/internal/logger"
	urfavecli "github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	app := &urfavecli.Command{
		Name:    "pgscan",
		Usage:   "PostgreSQL-compatible SQL lexical scanner",
		Version: version,
		Commands: []*urfavecli.Command{
			tokenizeCommand(),
			splitCommand(),
			checkEncodingCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func scannerFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "connection",
			Aliases: []string{"c"},
			Usage:   "PostgreSQL connection string; resolves encoding live instead of assuming UTF8",
		},
		&urfavecli.StringFlag{
			Name:  "backslash-quote",
			Usage: "backslash_quote policy: on, off, or safe_encoding",
		},
		&urfavecli.IntFlag{
			Name:  "name-data-len",
			Usage: "maximum identifier length (NAMEDATALEN)",
		},
		&urfavecli.BoolFlag{
			Name:  "verbose",
			Usage: "enable debug output",
		},
	}
}

func loadConfig(cmd *urfavecli.Command, format string) (*cli.Config, error) {
	config := cli.DefaultConfig
	cli.ApplyFlagsToConfig(&config,
		cmd.String("connection"),
		cmd.String("backslash-quote"),
		format,
		cmd.Int("name-data-len"),
		cmd.Bool("verbose"),
	)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger.SetVerbose(config.Verbose)
	return &config, nil
}

func tokenizeCommand() *urfavecli.Command {
	flags := append(scannerFlags(), &urfavecli.StringFlag{
		Name:  "format",
		Usage: "output format (json or text)",
		Value: "json",
	})
	return &urfavecli.Command{
		Name:      "tokenize",
		Usage:     "Scan one or more files and print their token stream",
		ArgsUsage: "FILE...",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			config, err := loadConfig(cmd, cmd.String("format"))
			if err != nil {
				return exitCode2(err)
			}
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				paths = []string{"-"}
			}
			return cli.Tokenize(ctx, config, paths, os.Stdout)
		},
	}
}

func splitCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "split",
		Usage:     "Split a file into statements at top-level semicolon boundaries",
		ArgsUsage: "FILE",
		Flags:     scannerFlags(),
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			config, err := loadConfig(cmd, "json")
			if err != nil {
				return exitCode2(err)
			}
			path := cmd.Args().First()
			if path == "" {
				return exitCode2(fmt.Errorf("split requires a FILE argument"))
			}
			return cli.Split(ctx, config, path, os.Stdout)
		},
	}
}

func checkEncodingCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "check-encoding",
		Usage: "Report the live server/client encoding and string-literal policy of a PostgreSQL connection",
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:     "connection",
				Aliases:  []string{"c"},
				Usage:    "PostgreSQL connection string",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return cli.CheckEncoding(ctx, cmd.String("connection"), os.Stdout)
		},
	}
}

// exitCode2 maps a config.Validate() failure to process exit code 2
// rather than the generic failure code 1 an unhandled command error gets.
func exitCode2(err error) error {
	logger.Errorf("%v", err)
	os.Exit(2)
	return nil
}
