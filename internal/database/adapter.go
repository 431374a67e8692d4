package database

import "context"

// Adapter abstracts the relational store behind the direct-insert path.
// Query results come back as generic row maps so callers can seed identifier
// pools from a live store without provider-specific scanning.
type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)

	// Transaction state is held by the adapter; Exec and Query route
	// through the open transaction until Commit or Rollback.
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	SetForeignKeyChecks(ctx context.Context, enabled bool) error
	Truncate(ctx context.Context, table string) error

	TableCount(ctx context.Context, table string) (int64, error)
	MaxID(ctx context.Context, table, column string) (int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
}

func NewAdapter(provider string) Adapter {
	switch provider {
	case "postgresql", "postgres":
		return NewPostgresAdapter()
	case "mysql":
		return NewMySQLAdapter()
	case "sqlite", "sqlite3":
		return NewSQLiteAdapter()
	default:
		return NewPostgresAdapter()
	}
}
