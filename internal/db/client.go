package db

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"assustadus/internal/config"
	"assustadus/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

type Client struct {
	drv    *entsql.Driver
	db     *sql.DB
	logger logging.Logger
}

// NewClient opens a pgx-backed database/sql pool, verifies connectivity and
// wraps it in an Ent SQL driver.
func NewClient(ctx context.Context, cfg config.PostgresConfig, logger logging.Logger) (*Client, error) {
	dsn := cfg.EffectiveDSN()

	dbStd, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		dbStd.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		dbStd.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if err := dbStd.PingContext(ctx); err != nil {
		_ = dbStd.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return NewClientFromDB(dbStd, logger), nil
}

// NewClientFromDB wraps an already opened pool. The pool must speak the
// PostgreSQL dialect.
func NewClientFromDB(dbStd *sql.DB, logger logging.Logger) *Client {
	return &Client{
		drv:    entsql.OpenDB(dialect.Postgres, dbStd),
		db:     dbStd,
		logger: logger.With("component", "db_client"),
	}
}

// Close closes the underlying DB pool.
func (c *Client) Close() error {
	return c.drv.Close()
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.drv.Dialect())
}

func (c *Client) query(ctx context.Context, q entsql.Querier) (*entsql.Rows, error) {
	query, args := q.Query()
	c.logger.Debug("sql query", "query", query)

	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) exec(ctx context.Context, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	c.logger.Debug("sql exec", "query", query)

	var res sql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}
