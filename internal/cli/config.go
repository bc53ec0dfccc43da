package cli

import (
	"github.com/cybertec-postgresql/pgscan/internal/scanconfig"
	"github.com/cybertec-postgresql/pgscan/pkg/types"
)

// Config is an alias for the shared Config type.
type Config = types.Config

// ConfigError is an alias for the shared ConfigError type.
type ConfigError = types.ConfigError

// DefaultConfig provides default configuration values, mirroring
// scanconfig.Default().
var DefaultConfig = Config{
	StandardConformingStrings: true,
	BackslashQuote:            "safe_encoding",
	EscapeStringWarning:       true,
	NameDataLen:               64,
	OutputFormat:              "json",
}

// ApplyFlagsToConfig applies command-line flag values to configuration.
// Zero-value flags leave the corresponding field untouched.
func ApplyFlagsToConfig(c *Config, connection, backslashQuote, format string, nameDataLen int, verbose bool) {
	if connection != "" {
		c.ConnectionString = connection
	}
	if backslashQuote != "" {
		c.BackslashQuote = backslashQuote
	}
	if format != "" {
		c.OutputFormat = format
	}
	if nameDataLen != 0 {
		c.NameDataLen = nameDataLen
	}
	if verbose {
		c.Verbose = verbose
	}
}

// Flags converts a Config into the scanconfig.Flags snapshot a Scanner is
// constructed with.
func Flags(c *Config) scanconfig.Flags {
	f := scanconfig.Flags{
		StandardConformingStrings: c.StandardConformingStrings,
		EscapeStringWarning:       c.EscapeStringWarning,
		NameDataLen:               c.NameDataLen,
	}
	switch c.BackslashQuote {
	case "on":
		f.BackslashQuote = scanconfig.BackslashQuoteOn
	case "off":
		f.BackslashQuote = scanconfig.BackslashQuoteOff
	default:
		f.BackslashQuote = scanconfig.BackslashQuoteSafeEncoding
	}
	return f
}
