package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatField(t *testing.T) {
	repID := int64(7)
	notes := "rush order"
	when := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{true, "1"},
		{false, "0"},
		{42, "42"},
		{int64(9000), "9000"},
		{0.085, "0.085"},
		{decimal.RequireFromString("41.04"), "41.04"},
		{decimal.RequireFromString("5"), "5.00"},
		{when, "2025-03-14 09:26:53"},
		{&repID, "7"},
		{(*int64)(nil), ""},
		{&notes, "rush order"},
		{(*string)(nil), ""},
	}
	for _, c := range cases {
		if got := formatField(c.in); got != c.want {
			t.Errorf("formatField(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCSVSinkWritesPerTableFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSV(dir)
	if err != nil {
		t.Fatalf("NewCSV: %v", err)
	}

	created := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	rows := [][]any{
		{int64(1), "Electronics", "Products related to electronics", created},
		{int64(2), "Books", "Products related to books", created},
	}
	cols := []string{"category_id", "category_name", "description", "created_at"}
	if err := s.WriteRows(context.Background(), "categories", cols, rows); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	// Appends to the same file on a second call.
	more := [][]any{{int64(3), "Toys", "Products related to toys", created}}
	if err := s.WriteRows(context.Background(), "categories", cols, more); err != nil {
		t.Fatalf("WriteRows append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "categories.csv"))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 and no header row", len(records))
	}
	if records[0][0] != "1" || records[0][1] != "Electronics" {
		t.Errorf("first record = %v", records[0])
	}
	if records[0][3] != "2025-01-02 12:00:00" {
		t.Errorf("timestamp field = %q", records[0][3])
	}
	if records[2][1] != "Toys" {
		t.Errorf("appended record = %v", records[2])
	}
}

func TestCSVSinkNullableFields(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSV(dir)
	if err != nil {
		t.Fatalf("NewCSV: %v", err)
	}

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := [][]any{
		{int64(1), int64(5), now, decimal.RequireFromString("38.00"),
			decimal.RequireFromString("3.04"), decimal.Zero,
			decimal.RequireFromString("41.04"), "cash", "paid",
			(*int64)(nil), (*string)(nil), now, now},
	}
	cols := []string{"sale_id", "customer_id", "sale_date", "subtotal", "tax_amount",
		"discount_amount", "total_amount", "payment_method", "payment_status",
		"sales_rep_id", "notes", "created_at", "updated_at"}
	if err := s.WriteRows(context.Background(), "sales", cols, rows); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sales.csv"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "sales.csv"))
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse output %q: %v", data, err)
	}
	rec := records[0]
	if rec[3] != "38.00" || rec[4] != "3.04" || rec[6] != "41.04" {
		t.Errorf("money fields = %q/%q/%q", rec[3], rec[4], rec[6])
	}
	if rec[5] != "0.00" {
		t.Errorf("discount_amount = %q, want 0.00", rec[5])
	}
	if rec[9] != "" || rec[10] != "" {
		t.Errorf("nullable fields = %q/%q, want empty", rec[9], rec[10])
	}
}

func TestErrorWrapping(t *testing.T) {
	inner := os.ErrClosed
	e := &Error{Kind: KindConstraint, Table: "sales", Err: inner}
	if e.Unwrap() != inner {
		t.Error("Unwrap lost the inner error")
	}
	msg := e.Error()
	if msg == "" || e.Kind.String() != "constraint" {
		t.Errorf("error text %q, kind %q", msg, e.Kind.String())
	}
}
