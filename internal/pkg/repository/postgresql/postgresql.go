// Package postgresql owns the bun database handle shared by all repositories.
package postgresql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
)

const defaultQueryTimeout = 5 * time.Second

// Config describes how to reach the database.
type Config struct {
	User         string
	Password     string
	Host         string
	Port         string
	Name         string
	DisableTLS   bool
	QueryTimeout time.Duration
	Debug        bool
}

// Database embeds *bun.DB and adds the helpers repositories share.
type Database struct {
	*bun.DB
	QueryTimeout time.Duration
}

// NewDB opens a PostgreSQL connection through pgdriver.
func NewDB(cfg Config, log zerolog.Logger) (*Database, error) {
	opts := []pgdriver.Option{
		pgdriver.WithAddr(net.JoinHostPort(cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.Name),
		pgdriver.WithApplicationName("venue-allotment"),
		pgdriver.WithTimeout(10 * time.Second),
	}
	if cfg.DisableTLS {
		opts = append(opts, pgdriver.WithInsecure(true))
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping database")
	}

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("database connected")

	return New(db, cfg.QueryTimeout), nil
}

// New wraps an already opened bun.DB.
func New(db *bun.DB, queryTimeout time.Duration) *Database {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &Database{DB: db, QueryTimeout: queryTimeout}
}

// IsPostgres reports whether the underlying dialect is PostgreSQL.
func (d Database) IsPostgres() bool {
	return d.Dialect().Name() == dialect.PG
}

// WithTimeout bounds a repository call by the configured query timeout.
func (d Database) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.QueryTimeout)
}

// RunInTx runs fn inside a transaction bounded by the query timeout. The
// transaction is rolled back when fn returns an error.
func (d Database) RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error {
	ctx, cancel := d.WithTimeout(ctx)
	defer cancel()

	return d.DB.RunInTx(ctx, opts, fn)
}

// CheckClaims returns the claims of the authenticated caller. When roles are
// given the caller must hold one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("you are not authenticated"), http.StatusUnauthorized)
	}
	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of data are set.
func (d Database) ValidateStruct(data interface{}, fields ...string) error {
	return web.RequireFields(data, fields...)
}

// Classify turns a store error into a web error. Missing rows map to 404 and
// constraint violations lost to a concurrent writer map to 409. Timeouts and
// broken connections are transient; anything else is internal.
func Classify(err error, msg string) error {
	if err == nil {
		return nil
	}

	var webErr *web.Error
	if errors.As(err, &webErr) {
		return err
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return web.NewRequestError(errors.Wrap(err, msg), http.StatusNotFound)
	case IsUniqueViolation(err), IsForeignKeyViolation(err):
		return web.NewRequestError(errors.Wrap(err, msg), http.StatusConflict)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return web.NewRequestError(errors.Wrap(err, msg), http.StatusServiceUnavailable)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return web.NewRequestError(errors.Wrap(err, msg), http.StatusServiceUnavailable)
	}

	return web.NewRequestError(errors.Wrap(err, msg), http.StatusInternalServerError)
}
