package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteAdapter struct {
	db *sql.DB
	tx *sql.Tx
	qb squirrel.StatementBuilderType
}

func NewSQLiteAdapter() *SQLiteAdapter {
	return &SQLiteAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *SQLiteAdapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("sqlite3", url)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteAdapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteAdapter) Exec(ctx context.Context, query string, args ...any) error {
	var err error
	if s.tx != nil {
		_, err = s.tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	return err
}

func (s *SQLiteAdapter) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if s.tx != nil {
		rows, err = s.tx.QueryContext(ctx, query, args...)
	} else {
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (s *SQLiteAdapter) Begin(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	s.tx = tx
	return nil
}

func (s *SQLiteAdapter) Commit(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

func (s *SQLiteAdapter) Rollback(ctx context.Context) error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	return err
}

func (s *SQLiteAdapter) SetForeignKeyChecks(ctx context.Context, enabled bool) error {
	if enabled {
		return s.Exec(ctx, "PRAGMA foreign_keys = ON")
	}
	return s.Exec(ctx, "PRAGMA foreign_keys = OFF")
}

func (s *SQLiteAdapter) Truncate(ctx context.Context, table string) error {
	if err := s.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return err
	}
	// Reset the autoincrement sequence; ignore failure when the table
	// never had one.
	s.Exec(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", table)
	return nil
}

func (s *SQLiteAdapter) TableCount(ctx context.Context, table string) (int64, error) {
	query, _, err := s.qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQLiteAdapter) MaxID(ctx context.Context, table, column string) (int64, error) {
	var max int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", column, table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func (s *SQLiteAdapter) PaidRevenue(ctx context.Context) (float64, error) {
	query, args, err := s.qb.Select("COALESCE(SUM(total_amount), 0)").
		From("sales").Where(squirrel.Eq{"payment_status": "paid"}).ToSql()
	if err != nil {
		return 0, err
	}
	var revenue float64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&revenue); err != nil {
		return 0, err
	}
	return revenue, nil
}
