// Package postgres provides the PostgreSQL store backend over a pgx pool.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TeemuStew/expense-tracker/internal/core"
	"github.com/TeemuStew/expense-tracker/internal/store"
)

//go:embed schema.sql
var schemaSQL string

type Repository struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Repository)(nil)

// New connects to PostgreSQL, applies the schema, and returns the repository.
// connString is a pgx/libpq connection string or URL.
func New(ctx context.Context, connString string) (*Repository, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	slog.InfoContext(ctx, "Connected to PostgreSQL")
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO expenses (description, amount_cents, date, category)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Description, e.Amount.Cents, e.Date.String(), e.Category).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents)
	return id, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, description, amount_cents, date, category FROM expenses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			cents   int64
			dateRaw string
		)
		if err := rows.Scan(&e.ID, &e.Description, &cents, &dateRaw, &e.Category); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		date, err := core.ParseDate(dateRaw)
		if err != nil {
			return nil, &core.DataCorruptionError{ID: e.ID, Field: "date", Detail: fmt.Sprintf("%q does not parse", dateRaw)}
		}
		e.Amount = core.Money{Cents: cents}
		e.Date = date
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id int64, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses SET description = $1, amount_cents = $2, date = $3, category = $4 WHERE id = $5`,
		e.Description, e.Amount.Cents, e.Date.String(), e.Category, id)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{ID: id}
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &core.NotFoundError{ID: id}
	}
	return nil
}
