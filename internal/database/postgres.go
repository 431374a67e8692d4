package database

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresAdapter struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
	qb   squirrel.StatementBuilderType
}

func NewPostgresAdapter() *PostgresAdapter {
	return &PostgresAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *PostgresAdapter) Connect(ctx context.Context, url string) error {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	p.pool = pool
	return nil
}

func (p *PostgresAdapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *PostgresAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresAdapter) Exec(ctx context.Context, query string, args ...any) error {
	var err error
	if p.tx != nil {
		_, err = p.tx.Exec(ctx, query, args...)
	} else {
		_, err = p.pool.Exec(ctx, query, args...)
	}
	return err
}

func (p *PostgresAdapter) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if p.tx != nil {
		rows, err = p.tx.Query(ctx, query, args...)
	} else {
		rows, err = p.pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (p *PostgresAdapter) Begin(ctx context.Context) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	p.tx = tx
	return nil
}

func (p *PostgresAdapter) Commit(ctx context.Context) error {
	if p.tx == nil {
		return nil
	}
	err := p.tx.Commit(ctx)
	p.tx = nil
	return err
}

func (p *PostgresAdapter) Rollback(ctx context.Context) error {
	if p.tx == nil {
		return nil
	}
	err := p.tx.Rollback(ctx)
	p.tx = nil
	return err
}

// SetForeignKeyChecks toggles constraint enforcement for the session.
// Postgres has no global FK switch; replica mode skips triggers the same way.
func (p *PostgresAdapter) SetForeignKeyChecks(ctx context.Context, enabled bool) error {
	if enabled {
		return p.Exec(ctx, "SET session_replication_role = DEFAULT")
	}
	return p.Exec(ctx, "SET session_replication_role = replica")
}

func (p *PostgresAdapter) Truncate(ctx context.Context, table string) error {
	return p.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
}

func (p *PostgresAdapter) TableCount(ctx context.Context, table string) (int64, error) {
	query, _, err := p.qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := p.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *PostgresAdapter) MaxID(ctx context.Context, table, column string) (int64, error) {
	var max int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", column, table)
	if err := p.pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func (p *PostgresAdapter) PaidRevenue(ctx context.Context) (float64, error) {
	query, args, err := p.qb.Select("COALESCE(SUM(total_amount), 0)").
		From("sales").Where(squirrel.Eq{"payment_status": "paid"}).ToSql()
	if err != nil {
		return 0, err
	}
	var revenue float64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&revenue); err != nil {
		return 0, err
	}
	return revenue, nil
}
