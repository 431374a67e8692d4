package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04:05"

// CSVSink writes one UTF-8 file per table under dir, one record per line,
// no header row. Files stay open across writes and are flushed on Close.
type CSVSink struct {
	dir     string
	files   map[string]*os.File
	writers map[string]*csv.Writer
}

func NewCSV(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVSink{
		dir:     dir,
		files:   make(map[string]*os.File),
		writers: make(map[string]*csv.Writer),
	}, nil
}

func (s *CSVSink) writer(table string) (*csv.Writer, error) {
	if w, ok := s.writers[table]; ok {
		return w, nil
	}
	f, err := os.Create(filepath.Join(s.dir, table+".csv"))
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	s.files[table] = f
	s.writers[table] = w
	return w, nil
}

func (s *CSVSink) WriteRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	w, err := s.writer(table)
	if err != nil {
		return &Error{Kind: KindConnectivity, Table: table, Err: err}
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, v := range row {
			record[i] = formatField(v)
		}
		if err := w.Write(record); err != nil {
			return &Error{Kind: KindConnectivity, Table: table, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &Error{Kind: KindConnectivity, Table: table, Err: err}
	}
	return nil
}

func (s *CSVSink) Close() error {
	var firstErr error
	for table, w := range s.writers {
		w.Flush()
		if err := w.Error(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := s.files[table].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// formatField renders a value the way the bulk-load scripts expect: bools as
// 1/0, money with two fixed places, NULL as an empty field.
func formatField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case decimal.Decimal:
		return t.StringFixed(2)
	case time.Time:
		return t.Format(timestampLayout)
	case *int64:
		if t == nil {
			return ""
		}
		return strconv.FormatInt(*t, 10)
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return fmt.Sprintf("%v", t)
	}
}
