package pgenc

import (
	"context"
	"fmt"
	"sync"

	"github.com/cybertec-postgresql/pgscan/internal/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationName = "pgscan"

// Live resolves server_encoding and client_encoding from a running
// PostgreSQL server: connect, run a SHOW query, wrap failures as a typed
// *errors.ConnectionError.
//
// The result is cached after the first successful resolution via once, so
// concurrent scans sharing one Live provider never repeat the round trip.
type Live struct {
	pool *pgxpool.Pool

	once       sync.Once
	resolveErr error
	serverUTF8 bool
	clientOnly bool

	standardConformingStrings bool
	backslashQuote            string
}

// NewLive builds a connection pool for connString and returns a Live
// provider bound to it. The caller owns the returned Pool's lifetime via
// Close.
func NewLive(ctx context.Context, connString string) (*Live, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, errors.NewConnectionError("", 0, fmt.Sprintf("invalid connection configuration: %v", err))
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolConfig.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.NewConnectionError("", 0, fmt.Sprintf("failed to create connection pool: %v", err))
	}

	if err := pool.Ping(ctx); err != nil {
		host := poolConfig.ConnConfig.Host
		port := int(poolConfig.ConnConfig.Port)
		pool.Close()
		return nil, errors.NewConnectionError(host, port, fmt.Sprintf("failed to connect: %v", err))
	}

	return &Live{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (l *Live) Close() {
	if l.pool != nil {
		l.pool.Close()
	}
}

// resolve fills in the cached SHOW results exactly once.
func (l *Live) resolve(ctx context.Context) error {
	l.once.Do(func() {
		var serverEncoding, clientEncoding, scs, bq string
		row := l.pool.QueryRow(ctx, "SHOW server_encoding")
		if err := row.Scan(&serverEncoding); err != nil {
			l.resolveErr = errors.NewConnectionError("", 0, fmt.Sprintf("failed to query server_encoding: %v", err))
			return
		}
		row = l.pool.QueryRow(ctx, "SHOW client_encoding")
		if err := row.Scan(&clientEncoding); err != nil {
			l.resolveErr = errors.NewConnectionError("", 0, fmt.Sprintf("failed to query client_encoding: %v", err))
			return
		}
		row = l.pool.QueryRow(ctx, "SHOW standard_conforming_strings")
		if err := row.Scan(&scs); err != nil {
			l.resolveErr = errors.NewConnectionError("", 0, fmt.Sprintf("failed to query standard_conforming_strings: %v", err))
			return
		}
		row = l.pool.QueryRow(ctx, "SHOW backslash_quote")
		if err := row.Scan(&bq); err != nil {
			l.resolveErr = errors.NewConnectionError("", 0, fmt.Sprintf("failed to query backslash_quote: %v", err))
			return
		}

		l.serverUTF8 = serverEncoding == "UTF8"
		l.clientOnly = isClientOnly(clientEncoding)
		l.standardConformingStrings = scs == "on"
		l.backslashQuote = bq
	})
	return l.resolveErr
}

// Resolve performs (or waits out) the one-time SHOW round trip, so callers
// can surface a connection failure before scanning rather than have it
// resurface opaquely from inside ServerIsUTF8.
func (l *Live) Resolve(ctx context.Context) error {
	return l.resolve(ctx)
}

// ServerIsUTF8 implements scan.EncodingProvider. Resolve must have
// succeeded first; if resolution failed, this reports the Static default's
// answer, and before Resolve has run it reports false.
func (l *Live) ServerIsUTF8() bool {
	if l.resolveErr != nil {
		return Default.ServerUTF8
	}
	return l.serverUTF8
}

// ClientOnlyEncoding implements scan.EncodingProvider.
func (l *Live) ClientOnlyEncoding() bool {
	if l.resolveErr != nil {
		return Default.ClientOnly
	}
	return l.clientOnly
}

// StandardConformingStrings reports the server's standard_conforming_strings
// setting, for the check-encoding command.
func (l *Live) StandardConformingStrings() bool { return l.standardConformingStrings }

// BackslashQuotePolicy reports the server's backslash_quote setting, for
// the check-encoding command.
func (l *Live) BackslashQuotePolicy() string { return l.backslashQuote }
