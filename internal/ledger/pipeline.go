package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brunobrsr1/sales-project/internal/sink"
	"github.com/shopspring/decimal"
)

var categoryNames = []string{
	"Electronics", "Clothing", "Home & Garden", "Sports & Outdoors",
	"Books", "Health & Beauty", "Toys & Games", "Automotive",
	"Food & Beverages", "Office Supplies", "Pet Supplies", "Music",
	"Movies & TV", "Kitchen & Dining", "Furniture", "Tools",
	"Jewelry", "Shoes", "Baby Products", "Art & Crafts",
}

var (
	territories = []string{
		"North", "South", "East", "West", "Central", "Northeast",
		"Southeast", "Northwest", "Southwest", "Online",
	}
	paymentMethods  = []string{"cash", "credit_card", "debit_card", "check", "online"}
	paymentStatuses = []string{"paid", "paid", "paid", "pending", "refunded"}
	discountChoices = []int{0, 0, 0, 5, 10, 15}
)

const defaultBatch = 100

// Synthesizer runs the seven generation stages in strict dependency order,
// registering identifiers in the per-entity pools and handing finished rows
// to the record sink.
type Synthesizer struct {
	counts Counts
	fake   Provider
	rng    *rand.Rand
	out    sink.Sink
	batch  int
	now    time.Time

	pools          map[string]*Pool
	repEmails      *UniqueAllocator
	customerEmails *UniqueAllocator

	written map[string]int
}

func NewSynthesizer(counts Counts, fake Provider, rng *rand.Rand, out sink.Sink, batch int) *Synthesizer {
	if batch <= 0 {
		batch = defaultBatch
	}
	if counts.MaxSaleItems <= 0 {
		counts.MaxSaleItems = 5
	}
	s := &Synthesizer{
		counts:  counts,
		fake:    fake,
		rng:     rng,
		out:     out,
		batch:   batch,
		now:     time.Now().UTC(),
		pools:   make(map[string]*Pool, len(TableOrder)),
		written: make(map[string]int),
	}
	for _, table := range TableOrder {
		s.pools[table] = NewPool(table, rng)
	}
	s.repEmails = NewUniqueAllocator(fake.Email, func(seq int64) string {
		return fmt.Sprintf("salesrep%d@%s", seq, fake.FreeEmailDomain())
	})
	s.customerEmails = NewUniqueAllocator(fake.Email, func(seq int64) string {
		return fmt.Sprintf("customer%d@%s", seq, fake.FreeEmailDomain())
	})
	return s
}

// Pool exposes the identifier pool for one table, so callers populating from
// a live store can register existing rows and advance the sequence counter.
func (s *Synthesizer) Pool(table string) *Pool {
	return s.pools[table]
}

// Written reports rows emitted per table so far.
func (s *Synthesizer) Written() map[string]int {
	return s.written
}

// Run executes every stage. The first stage error aborts the remainder.
func (s *Synthesizer) Run(ctx context.Context) error {
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"categories", s.generateCategories},
		{"suppliers", s.generateSuppliers},
		{"sales_representatives", s.generateSalesReps},
		{"customers", s.generateCustomers},
		{"products", s.generateProducts},
		{"sales", s.generateSales},
	}
	for _, stage := range stages {
		if err := stage.fn(ctx); err != nil {
			return fmt.Errorf("generating %s: %w", stage.name, err)
		}
	}
	return nil
}

func (s *Synthesizer) write(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.out.WriteRows(ctx, table, TableColumns[table], rows); err != nil {
		return err
	}
	s.written[table] += len(rows)
	return nil
}

// pct returns true p percent of the time.
func (s *Synthesizer) pct(p int) bool {
	return s.rng.Intn(100) < p
}

func (s *Synthesizer) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

func (s *Synthesizer) generateCategories(ctx context.Context) error {
	n := s.counts.Categories
	if n > len(categoryNames) {
		n = len(categoryNames)
	}
	pool := s.pools["categories"]
	var buf [][]any
	for i := 0; i < n; i++ {
		name := categoryNames[i]
		c := Category{
			ID:          pool.Next(),
			Name:        name,
			Description: "Products related to " + strings.ToLower(name),
			CreatedAt:   s.now,
		}
		pool.Register(c.ID, PoolAttrs{Active: true})
		buf = append(buf, c.Values())
		if len(buf) >= s.batch {
			if err := s.write(ctx, "categories", buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	return s.write(ctx, "categories", buf)
}

func (s *Synthesizer) generateSuppliers(ctx context.Context) error {
	pool := s.pools["suppliers"]
	var buf [][]any
	for i := 0; i < s.counts.Suppliers; i++ {
		sup := Supplier{
			ID:           pool.Next(),
			Name:         s.fake.CompanyName(),
			ContactEmail: s.fake.CompanyEmail(),
			ContactPhone: s.fake.Phone(),
			Address:      s.fake.FullAddress(),
			City:         s.fake.City(),
			Country:      s.fake.Country(),
			IsActive:     s.pct(75),
			CreatedAt:    s.now,
		}
		pool.Register(sup.ID, PoolAttrs{Active: sup.IsActive})
		buf = append(buf, sup.Values())
		if len(buf) >= s.batch {
			if err := s.write(ctx, "suppliers", buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	return s.write(ctx, "suppliers", buf)
}

func (s *Synthesizer) generateSalesReps(ctx context.Context) error {
	pool := s.pools["sales_representatives"]
	var buf [][]any
	for i := 0; i < s.counts.SalesReps; i++ {
		id := pool.Next()
		rep := SalesRep{
			ID:             id,
			FirstName:      s.fake.FirstName(),
			LastName:       s.fake.LastName(),
			Email:          s.repEmails.Next(id),
			Phone:          s.fake.Phone(),
			HireDate:       s.fake.TimeBetween(s.now.AddDate(-5, 0, 0), s.now),
			CommissionRate: round4(s.uniform(0.02, 0.10)),
			Territory:      territories[s.rng.Intn(len(territories))],
			IsActive:       s.pct(75),
			CreatedAt:      s.now,
		}
		pool.Register(rep.ID, PoolAttrs{Active: rep.IsActive})
		buf = append(buf, rep.Values())
		if len(buf) >= s.batch {
			if err := s.write(ctx, "sales_representatives", buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	return s.write(ctx, "sales_representatives", buf)
}

func (s *Synthesizer) generateCustomers(ctx context.Context) error {
	pool := s.pools["customers"]
	var buf [][]any
	for i := 0; i < s.counts.Customers; i++ {
		id := pool.Next()
		c := Customer{
			ID:               id,
			FirstName:        s.fake.FirstName(),
			LastName:         s.fake.LastName(),
			Email:            s.customerEmails.Next(id),
			Phone:            s.fake.Phone(),
			AddressLine:      s.fake.StreetAddress(),
			PostalCode:       s.fake.PostalCode(),
			City:             s.fake.City(),
			Country:          s.fake.Country(),
			RegistrationDate: s.fake.TimeBetween(s.now.AddDate(-2, 0, 0), s.now),
			IsActive:         s.pct(75),
		}
		pool.Register(c.ID, PoolAttrs{Active: c.IsActive})
		buf = append(buf, c.Values())
		if len(buf) >= s.batch {
			if err := s.write(ctx, "customers", buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	return s.write(ctx, "customers", buf)
}

func (s *Synthesizer) generateProducts(ctx context.Context) error {
	if s.counts.Products == 0 {
		return nil
	}
	categories := s.pools["categories"]
	suppliers := s.pools["suppliers"]
	pool := s.pools["products"]
	var buf [][]any
	for i := 0; i < s.counts.Products; i++ {
		categoryID, ok := categories.Sample()
		if !ok {
			return fmt.Errorf("no categories to reference")
		}
		supplierID, ok := suppliers.SampleActive()
		if !ok {
			return fmt.Errorf("no active suppliers to reference")
		}

		id := pool.Next()
		cost := decimal.NewFromFloat(s.uniform(5.0, 200.0)).Round(2)
		price := Price(cost, s.uniform(1.3, 3.0))
		p := Product{
			ID:            id,
			Name:          s.fake.CatchPhrase(),
			Code:          fmt.Sprintf("SKU-%06d", id),
			CategoryID:    categoryID,
			SupplierID:    supplierID,
			Price:         price,
			Cost:          cost,
			StockQuantity: s.rng.Intn(501),
			MinStockLevel: 5 + s.rng.Intn(46),
			Description:   s.fake.Paragraph(),
			IsActive:      s.pct(75),
			CreatedAt:     s.now,
			UpdatedAt:     s.now,
		}
		pool.Register(p.ID, PoolAttrs{Active: p.IsActive, Price: p.Price})
		buf = append(buf, p.Values())
		if len(buf) >= s.batch {
			if err := s.write(ctx, "products", buf); err != nil {
				return err
			}
			buf = buf[:0]
		}
	}
	return s.write(ctx, "products", buf)
}

// generateSales emits sales and their items. For each sale the items are
// generated first, so the sale row already carries its final totals; the
// sale row is still written ahead of its item rows to keep foreign keys
// satisfiable on a live store.
func (s *Synthesizer) generateSales(ctx context.Context) error {
	if s.counts.Sales == 0 {
		return nil
	}
	customers := s.pools["customers"]
	products := s.pools["products"]
	reps := s.pools["sales_representatives"]
	salePool := s.pools["sales"]
	itemPool := s.pools["sale_items"]

	var saleBuf, itemBuf [][]any
	flush := func() error {
		if err := s.write(ctx, "sales", saleBuf); err != nil {
			return err
		}
		saleBuf = saleBuf[:0]
		if err := s.write(ctx, "sale_items", itemBuf); err != nil {
			return err
		}
		itemBuf = itemBuf[:0]
		return nil
	}

	for i := 0; i < s.counts.Sales; i++ {
		customerID, ok := customers.SampleActive()
		if !ok {
			return fmt.Errorf("no active customers to reference")
		}
		productIDs := products.SampleDistinctActive(1 + s.rng.Intn(s.counts.MaxSaleItems))
		if len(productIDs) == 0 {
			return fmt.Errorf("no active products to reference")
		}

		saleID := salePool.Next()
		items := make([]SaleItem, 0, len(productIDs))
		lineTotals := make([]decimal.Decimal, 0, len(productIDs))
		for _, productID := range productIDs {
			basePrice := products.Attrs(productID).Price
			unitPrice := basePrice.Mul(decimal.NewFromFloat(s.uniform(0.9, 1.1))).Round(2)
			item := SaleItem{
				ID:              itemPool.Next(),
				SaleID:          saleID,
				ProductID:       productID,
				Quantity:        1 + s.rng.Intn(3),
				UnitPrice:       unitPrice,
				DiscountPercent: discountChoices[s.rng.Intn(len(discountChoices))],
			}
			item.LineTotal = LineTotal(item.Quantity, item.UnitPrice, item.DiscountPercent)
			items = append(items, item)
			lineTotals = append(lineTotals, item.LineTotal)
		}
		subtotal, tax, total := SaleTotals(lineTotals)

		sale := Sale{
			ID:             saleID,
			CustomerID:     customerID,
			SaleDate:       s.fake.TimeBetween(s.now.AddDate(-1, 0, 0), s.now),
			Subtotal:       subtotal,
			TaxAmount:      tax,
			DiscountAmount: decimal.Zero,
			TotalAmount:    total,
			PaymentMethod:  paymentMethods[s.rng.Intn(len(paymentMethods))],
			PaymentStatus:  paymentStatuses[s.rng.Intn(len(paymentStatuses))],
			CreatedAt:      s.now,
			UpdatedAt:      s.now,
		}
		if s.pct(70) {
			if repID, ok := reps.SampleActive(); ok {
				sale.SalesRepID = &repID
			}
		}
		if s.pct(30) {
			notes := s.fake.Sentence()
			sale.Notes = &notes
		}
		salePool.Register(saleID, PoolAttrs{Active: true})

		saleBuf = append(saleBuf, sale.Values())
		for _, item := range items {
			itemPool.Register(item.ID, PoolAttrs{Active: true})
			itemBuf = append(itemBuf, item.Values())
		}
		if len(saleBuf) >= s.batch || len(itemBuf) >= s.batch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func round4(f float64) float64 {
	d, _ := decimal.NewFromFloat(f).Round(4).Float64()
	return d
}
