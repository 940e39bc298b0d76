package db

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reagan13/backend-itservice/internal/domain"
)

// Querier is the query surface shared by *pgxpool.Pool, *pgxpool.Conn and
// pgx.Tx, so repository methods run unchanged inside or outside a
// transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Provider owns connection checkout and transaction demarcation. Workflows
// never commit or roll back themselves; they run inside WithTx.
type Provider struct {
	pool    *pgxpool.Pool
	retries int
	delay   time.Duration
	logger  *log.Logger
}

func NewProvider(pool *pgxpool.Pool, retries int, delay time.Duration, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if retries < 1 {
		retries = 1
	}
	return &Provider{pool: pool, retries: retries, delay: delay, logger: logger}
}

// Acquire checks a connection out of the pool, retrying a bounded number of
// times with a fixed delay. Exhausting the retries surfaces
// domain.ErrUnavailable instead of blocking forever.
func (p *Provider) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	var lastErr error
	for attempt := 1; attempt <= p.retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.delay)
		conn, err := p.pool.Acquire(attemptCtx)
		cancel()
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		p.logger.Printf("db provider: acquire attempt %d/%d failed: %v", attempt, p.retries, err)
		if attempt < p.retries {
			select {
			case <-time.After(p.delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, ctx.Err())
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, lastErr)
}

// WithTx runs fn inside one transaction on an exclusively owned connection.
// It commits on a nil return, rolls back on error, and releases the
// connection on every outcome.
func (p *Provider) WithTx(ctx context.Context, fn func(q Querier) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
