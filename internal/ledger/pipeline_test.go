package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/brunobrsr1/sales-project/internal/sink"
	"github.com/shopspring/decimal"
)

// stubProvider returns predictable values so assertions stay independent of
// the faker corpus. Email deliberately repeats to exercise the fallback path.
type stubProvider struct {
	n int
}

func (p *stubProvider) FirstName() string       { return "Ada" }
func (p *stubProvider) LastName() string        { return "Lovelace" }
func (p *stubProvider) Email() string           { return "ada@example.com" }
func (p *stubProvider) CompanyName() string     { return "Acme LLC" }
func (p *stubProvider) CompanyEmail() string    { return "contact@acme.com" }
func (p *stubProvider) FreeEmailDomain() string { return "gmail.com" }
func (p *stubProvider) Phone() string           { return "555-0100" }
func (p *stubProvider) StreetAddress() string   { return "1 Main St" }
func (p *stubProvider) FullAddress() string     { return "1 Main St, Springfield" }
func (p *stubProvider) City() string            { return "Springfield" }
func (p *stubProvider) Country() string         { return "United States" }
func (p *stubProvider) PostalCode() string      { return "12345" }
func (p *stubProvider) CatchPhrase() string     { return "Ergonomic Widget" }
func (p *stubProvider) Sentence() string        { return "A short note." }
func (p *stubProvider) Paragraph() string       { return "A longer description." }
func (p *stubProvider) TimeBetween(start, end time.Time) time.Time {
	p.n++
	return start.Add(time.Duration(p.n) * time.Hour)
}

func testCounts() Counts {
	return Counts{
		Categories:   5,
		Suppliers:    20,
		SalesReps:    10,
		Customers:    50,
		Products:     30,
		Sales:        40,
		MaxSaleItems: 5,
	}
}

func runSynthesizer(t *testing.T, counts Counts, seed int64) *sink.Memory {
	t.Helper()
	mem := sink.NewMemory()
	syn := NewSynthesizer(counts, &stubProvider{}, rand.New(rand.NewSource(seed)), mem, 10)
	if err := syn.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return mem
}

func TestSynthesizerRowCounts(t *testing.T) {
	counts := testCounts()
	mem := runSynthesizer(t, counts, 42)

	want := map[string]int{
		"categories":            counts.Categories,
		"suppliers":             counts.Suppliers,
		"sales_representatives": counts.SalesReps,
		"customers":             counts.Customers,
		"products":              counts.Products,
		"sales":                 counts.Sales,
	}
	for table, n := range want {
		if got := len(mem.Rows[table]); got != n {
			t.Errorf("%s: %d rows, want %d", table, got, n)
		}
	}
	items := len(mem.Rows["sale_items"])
	if items < counts.Sales || items > counts.Sales*counts.MaxSaleItems {
		t.Errorf("sale_items: %d rows, want between %d and %d",
			items, counts.Sales, counts.Sales*counts.MaxSaleItems)
	}
}

func TestSynthesizerColumnOrder(t *testing.T) {
	mem := runSynthesizer(t, testCounts(), 42)
	for table, cols := range mem.Columns {
		want := TableColumns[table]
		if len(cols) != len(want) {
			t.Errorf("%s: %d columns, want %d", table, len(cols), len(want))
			continue
		}
		for i := range cols {
			if cols[i] != want[i] {
				t.Errorf("%s column %d = %q, want %q", table, i, cols[i], want[i])
			}
		}
		for _, row := range mem.Rows[table] {
			if len(row) != len(want) {
				t.Fatalf("%s row has %d values, want %d", table, len(row), len(want))
			}
		}
	}
}

func TestSynthesizerForeignKeys(t *testing.T) {
	mem := runSynthesizer(t, testCounts(), 42)

	ids := func(table string) map[int64]struct{} {
		out := make(map[int64]struct{})
		for _, row := range mem.Rows[table] {
			out[row[0].(int64)] = struct{}{}
		}
		return out
	}
	categories := ids("categories")
	suppliers := ids("suppliers")
	customers := ids("customers")
	products := ids("products")
	sales := ids("sales")
	reps := ids("sales_representatives")

	for _, row := range mem.Rows["products"] {
		if _, ok := categories[row[3].(int64)]; !ok {
			t.Errorf("product %d references unknown category %d", row[0], row[3])
		}
		if _, ok := suppliers[row[4].(int64)]; !ok {
			t.Errorf("product %d references unknown supplier %d", row[0], row[4])
		}
	}
	for _, row := range mem.Rows["sales"] {
		if _, ok := customers[row[1].(int64)]; !ok {
			t.Errorf("sale %d references unknown customer %d", row[0], row[1])
		}
		if repID, ok := row[9].(*int64); ok && repID != nil {
			if _, known := reps[*repID]; !known {
				t.Errorf("sale %d references unknown sales rep %d", row[0], *repID)
			}
		}
	}
	for _, row := range mem.Rows["sale_items"] {
		if _, ok := sales[row[1].(int64)]; !ok {
			t.Errorf("sale item %d references unknown sale %d", row[0], row[1])
		}
		if _, ok := products[row[2].(int64)]; !ok {
			t.Errorf("sale item %d references unknown product %d", row[0], row[2])
		}
	}
}

func TestSynthesizerEmailsUnique(t *testing.T) {
	mem := runSynthesizer(t, testCounts(), 42)
	for _, table := range []string{"sales_representatives", "customers"} {
		seen := make(map[string]struct{})
		for _, row := range mem.Rows[table] {
			email := row[3].(string)
			if !strings.Contains(email, "@") {
				t.Errorf("%s email %q is not an address", table, email)
			}
			if _, dup := seen[email]; dup {
				t.Errorf("%s email %q issued twice", table, email)
			}
			seen[email] = struct{}{}
		}
	}
}

func TestSynthesizerItemDomains(t *testing.T) {
	mem := runSynthesizer(t, testCounts(), 42)
	validDiscount := map[int]bool{0: true, 5: true, 10: true, 15: true}
	perSale := make(map[int64]map[int64]struct{})

	for _, row := range mem.Rows["sale_items"] {
		saleID := row[1].(int64)
		productID := row[2].(int64)
		quantity := row[3].(int)
		unitPrice := row[4].(decimal.Decimal)
		discount := row[5].(int)
		lineTotal := row[6].(decimal.Decimal)

		if quantity < 1 || quantity > 3 {
			t.Errorf("quantity %d out of range", quantity)
		}
		if !validDiscount[discount] {
			t.Errorf("discount %d not in allowed set", discount)
		}
		if want := LineTotal(quantity, unitPrice, discount); !lineTotal.Equal(want) {
			t.Errorf("line total %s, want %s", lineTotal, want)
		}

		if perSale[saleID] == nil {
			perSale[saleID] = make(map[int64]struct{})
		}
		if _, dup := perSale[saleID][productID]; dup {
			t.Errorf("sale %d repeats product %d", saleID, productID)
		}
		perSale[saleID][productID] = struct{}{}
	}
}

func TestSynthesizerSaleTotalsConsistent(t *testing.T) {
	mem := runSynthesizer(t, testCounts(), 42)

	lineSums := make(map[int64]decimal.Decimal)
	for _, row := range mem.Rows["sale_items"] {
		saleID := row[1].(int64)
		lineSums[saleID] = lineSums[saleID].Add(row[6].(decimal.Decimal))
	}

	for _, row := range mem.Rows["sales"] {
		saleID := row[0].(int64)
		subtotal := row[3].(decimal.Decimal)
		tax := row[4].(decimal.Decimal)
		total := row[6].(decimal.Decimal)

		if !subtotal.Equal(lineSums[saleID]) {
			t.Errorf("sale %d subtotal %s, want %s", saleID, subtotal, lineSums[saleID])
		}
		if want := TaxAmount(subtotal); !tax.Equal(want) {
			t.Errorf("sale %d tax %s, want %s", saleID, tax, want)
		}
		if want := subtotal.Add(tax); !total.Equal(want) {
			t.Errorf("sale %d total %s, want %s", saleID, total, want)
		}
	}
}

func TestSynthesizerProductPriceCoversCost(t *testing.T) {
	mem := runSynthesizer(t, testCounts(), 42)
	for _, row := range mem.Rows["products"] {
		price := row[5].(decimal.Decimal)
		cost := row[6].(decimal.Decimal)
		if price.Cmp(cost) < 0 {
			t.Errorf("product %d price %s below cost %s", row[0], price, cost)
		}
		code := row[2].(string)
		if want := fmt.Sprintf("SKU-%06d", row[0].(int64)); code != want {
			t.Errorf("product code %q, want %q", code, want)
		}
	}
}

func TestSynthesizerFailsWithoutReferents(t *testing.T) {
	cases := []struct {
		name   string
		counts Counts
		want   string
	}{
		{"no categories", Counts{Products: 5, Suppliers: 20}, "no categories"},
		{"no active products", Counts{Categories: 3, Suppliers: 20, Customers: 50, Sales: 5}, "no active products"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			syn := NewSynthesizer(c.counts, &stubProvider{}, rand.New(rand.NewSource(42)), sink.NewMemory(), 10)
			err := syn.Run(context.Background())
			if err == nil {
				t.Fatal("Run succeeded, want error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q does not mention %q", err, c.want)
			}
		})
	}
}

func TestSynthesizerDeterministicCounts(t *testing.T) {
	counts := testCounts()
	first := runSynthesizer(t, counts, 99)
	second := runSynthesizer(t, counts, 99)
	for _, table := range TableOrder {
		if len(first.Rows[table]) != len(second.Rows[table]) {
			t.Errorf("%s: %d rows on first run, %d on second",
				table, len(first.Rows[table]), len(second.Rows[table]))
		}
	}
}
