package sink

import "context"

// Memory collects rows in process. Used by tests.
type Memory struct {
	Rows    map[string][][]any
	Columns map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		Rows:    make(map[string][][]any),
		Columns: make(map[string][]string),
	}
}

func (m *Memory) WriteRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	m.Columns[table] = columns
	m.Rows[table] = append(m.Rows[table], rows...)
	return nil
}

func (m *Memory) Close() error { return nil }
