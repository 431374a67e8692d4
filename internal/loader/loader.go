// Package loader bulk-loads a directory of generated CSV files into
// PostgreSQL, the native counterpart of the MySQL import script.
package loader

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lib/pq"

	"github.com/brunobrsr1/sales-project/internal/ledger"
)

type Loader struct {
	db *sql.DB
}

func Open(ctx context.Context, url string) (*Loader, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Loader{db: db}, nil
}

func (l *Loader) Close() error {
	return l.db.Close()
}

// Load copies every table's CSV file into the store inside one transaction,
// in dependency order, with trigger-based constraint checks suspended for
// the session. Returns rows loaded per table.
func (l *Loader) Load(ctx context.Context, dir string) (map[string]int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SET session_replication_role = replica"); err != nil {
		return nil, fmt.Errorf("failed to disable constraint checks: %w", err)
	}

	loaded := make(map[string]int64, len(ledger.TableOrder))
	for _, table := range ledger.TableOrder {
		n, err := l.copyTable(ctx, tx, dir, table)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", table, err)
		}
		loaded[table] = n
	}

	if _, err := tx.ExecContext(ctx, "SET session_replication_role = DEFAULT"); err != nil {
		return nil, fmt.Errorf("failed to restore constraint checks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return loaded, nil
}

func (l *Loader) copyTable(ctx context.Context, tx *sql.Tx, dir, table string) (int64, error) {
	f, err := os.Open(filepath.Join(dir, table+".csv"))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	columns := ledger.TableColumns[table]
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return 0, err
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(columns)
	var count int64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stmt.Close()
			return 0, err
		}
		args := make([]any, len(record))
		for i, field := range record {
			if field == "" {
				args[i] = nil
			} else {
				args[i] = field
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			stmt.Close()
			return 0, err
		}
		count++
	}
	// Final Exec flushes the COPY buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, err
	}
	return count, stmt.Close()
}

// PaidRevenue reports the aggregate total of paid sales after a load.
func (l *Loader) PaidRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := l.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE payment_status = 'paid'").
		Scan(&revenue)
	return revenue, err
}
