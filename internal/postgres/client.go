package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/seatstack/seatstack/internal/config"
	"github.com/seatstack/seatstack/internal/logger"
	"github.com/seatstack/seatstack/internal/types"
)

// Querier is the subset of sqlx operations shared by *sqlx.DB and *sqlx.Tx.
// Repositories use it so the same code runs inside and outside a transaction.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
}

// IClient defines the interface for postgres client operations
type IClient interface {
	// WithTx wraps the given function in a transaction. If the context
	// already carries a transaction it is reused.
	WithTx(ctx context.Context, fn func(context.Context) error) error

	// TxFromContext returns the transaction from context if it exists
	TxFromContext(ctx context.Context) *sqlx.Tx

	// Querier returns the current transaction if in a transaction, or the
	// regular database handle
	Querier(ctx context.Context) Querier
}

// Client wraps sqlx.DB to provide transaction management
type Client struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewDB opens the postgres connection pool from config
func NewDB(cfg *config.Configuration) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	return db, nil
}

// NewClient creates a new postgres client
func NewClient(db *sqlx.DB, logger *logger.Logger) IClient {
	return &Client{db: db, logger: logger}
}

// WithTx wraps the given function in a transaction
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := c.TxFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, types.CtxDBTransaction, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// TxFromContext returns the transaction from context if it exists
func (c *Client) TxFromContext(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(types.CtxDBTransaction).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}

// Querier returns the transaction if present, otherwise the database handle
func (c *Client) Querier(ctx context.Context) Querier {
	if tx := c.TxFromContext(ctx); tx != nil {
		return tx
	}
	return c.db
}
