package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
)

type MySQLAdapter struct {
	db *sql.DB
	tx *sql.Tx
	qb squirrel.StatementBuilderType
}

func NewMySQLAdapter() *MySQLAdapter {
	return &MySQLAdapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (m *MySQLAdapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", url)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	m.db = db
	return nil
}

func (m *MySQLAdapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *MySQLAdapter) Exec(ctx context.Context, query string, args ...any) error {
	var err error
	if m.tx != nil {
		_, err = m.tx.ExecContext(ctx, query, args...)
	} else {
		_, err = m.db.ExecContext(ctx, query, args...)
	}
	return err
}

func (m *MySQLAdapter) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if m.tx != nil {
		rows, err = m.tx.QueryContext(ctx, query, args...)
	} else {
		rows, err = m.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (m *MySQLAdapter) Begin(ctx context.Context) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	m.tx = tx
	return nil
}

func (m *MySQLAdapter) Commit(ctx context.Context) error {
	if m.tx == nil {
		return nil
	}
	err := m.tx.Commit()
	m.tx = nil
	return err
}

func (m *MySQLAdapter) Rollback(ctx context.Context) error {
	if m.tx == nil {
		return nil
	}
	err := m.tx.Rollback()
	m.tx = nil
	return err
}

func (m *MySQLAdapter) SetForeignKeyChecks(ctx context.Context, enabled bool) error {
	if enabled {
		return m.Exec(ctx, "SET FOREIGN_KEY_CHECKS = 1")
	}
	return m.Exec(ctx, "SET FOREIGN_KEY_CHECKS = 0")
}

func (m *MySQLAdapter) Truncate(ctx context.Context, table string) error {
	return m.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table))
}

func (m *MySQLAdapter) TableCount(ctx context.Context, table string) (int64, error) {
	query, _, err := m.qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := m.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (m *MySQLAdapter) MaxID(ctx context.Context, table, column string) (int64, error) {
	var max int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", column, table)
	if err := m.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func (m *MySQLAdapter) PaidRevenue(ctx context.Context) (float64, error) {
	query, args, err := m.qb.Select("COALESCE(SUM(total_amount), 0)").
		From("sales").Where(squirrel.Eq{"payment_status": "paid"}).ToSql()
	if err != nil {
		return 0, err
	}
	var revenue float64
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&revenue); err != nil {
		return 0, err
	}
	return revenue, nil
}

// scanRows converts a generic result set into row maps, decoding []byte
// cells to strings the way the MySQL driver returns text-protocol values.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var result []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
