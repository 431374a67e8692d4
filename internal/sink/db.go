package sink

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/brunobrsr1/sales-project/internal/database"
)

// DBSink persists rows through a provider adapter as multi-row INSERTs.
type DBSink struct {
	adapter  database.Adapter
	provider string
}

func NewDB(adapter database.Adapter, provider string) *DBSink {
	return &DBSink{adapter: adapter, provider: provider}
}

func (s *DBSink) WriteRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	b := sq.Insert(table).Columns(columns...)
	for _, row := range rows {
		b = b.Values(normalize(row)...)
	}
	if s.provider == "postgresql" || s.provider == "postgres" {
		b = b.PlaceholderFormat(sq.Dollar)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return &Error{Kind: KindConnectivity, Table: table, Err: err}
	}
	if err := s.adapter.Exec(ctx, query, args...); err != nil {
		return classify(table, err)
	}
	return nil
}

// Close is a no-op; the adapter's lifecycle belongs to the caller.
func (s *DBSink) Close() error { return nil }

// normalize converts values the drivers cannot bind directly. Money travels
// as its 2-place string form so DECIMAL columns receive exact values, and
// typed nil pointers become plain NULLs.
func normalize(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		switch t := v.(type) {
		case decimal.Decimal:
			out[i] = t.StringFixed(2)
		case *int64:
			if t == nil {
				out[i] = nil
			} else {
				out[i] = *t
			}
		case *string:
			if t == nil {
				out[i] = nil
			} else {
				out[i] = *t
			}
		default:
			out[i] = v
		}
	}
	return out
}

// classify maps driver errors onto the sink's two failure kinds.
func classify(table string, err error) error {
	kind := KindConnectivity

	var pgErr *pgconn.PgError
	var myErr *mysql.MySQLError
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgErr):
		// Class 23 covers unique, foreign key and check violations.
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "23" {
			kind = KindConstraint
		}
	case errors.As(err, &myErr):
		// 1062 duplicate entry, 1452 foreign key.
		if myErr.Number == 1062 || myErr.Number == 1452 {
			kind = KindConstraint
		}
	case errors.As(err, &liteErr):
		if liteErr.Code == sqlite3.ErrConstraint {
			kind = KindConstraint
		}
	}
	return &Error{Kind: kind, Table: table, Err: err}
}
