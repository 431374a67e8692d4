package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TableOrder lists the seven tables in dependency order. Generation walks
// this list forward, truncation walks it backward.
var TableOrder = []string{
	"categories",
	"suppliers",
	"sales_representatives",
	"customers",
	"products",
	"sales",
	"sale_items",
}

// TableColumns holds the fixed column order every sink emits.
var TableColumns = map[string][]string{
	"categories": {"category_id", "category_name", "description", "created_at"},
	"suppliers": {"supplier_id", "supplier_name", "contact_email", "contact_phone",
		"address", "city", "country", "is_active", "created_at"},
	"sales_representatives": {"rep_id", "first_name", "last_name", "email", "phone",
		"hire_date", "commission_rate", "territory", "is_active", "created_at"},
	"customers": {"customer_id", "first_name", "last_name", "email", "phone",
		"address_line", "postal_code", "city", "country", "registration_date", "is_active"},
	"products": {"product_id", "product_name", "product_code", "category_id", "supplier_id",
		"price", "cost", "stock_quantity", "min_stock_level", "description",
		"is_active", "created_at", "updated_at"},
	"sales": {"sale_id", "customer_id", "sale_date", "subtotal", "tax_amount",
		"discount_amount", "total_amount", "payment_method", "payment_status",
		"sales_rep_id", "notes", "created_at", "updated_at"},
	"sale_items": {"sale_item_id", "sale_id", "product_id", "quantity",
		"unit_price", "discount_percent", "line_total"},
}

// Counts configures how many records each stage emits. Sale items have no
// independent count: every sale owns between 1 and MaxSaleItems items.
type Counts struct {
	Categories   int
	Suppliers    int
	SalesReps    int
	Customers    int
	Products     int
	Sales        int
	MaxSaleItems int
}

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

func (c Category) Values() []any {
	return []any{c.ID, c.Name, c.Description, c.CreatedAt}
}

type Supplier struct {
	ID           int64
	Name         string
	ContactEmail string
	ContactPhone string
	Address      string
	City         string
	Country      string
	IsActive     bool
	CreatedAt    time.Time
}

func (s Supplier) Values() []any {
	return []any{s.ID, s.Name, s.ContactEmail, s.ContactPhone, s.Address,
		s.City, s.Country, s.IsActive, s.CreatedAt}
}

type SalesRep struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	HireDate       time.Time
	CommissionRate float64
	Territory      string
	IsActive       bool
	CreatedAt      time.Time
}

func (r SalesRep) Values() []any {
	return []any{r.ID, r.FirstName, r.LastName, r.Email, r.Phone, r.HireDate,
		r.CommissionRate, r.Territory, r.IsActive, r.CreatedAt}
}

type Customer struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	AddressLine      string
	PostalCode       string
	City             string
	Country          string
	RegistrationDate time.Time
	IsActive         bool
}

func (c Customer) Values() []any {
	return []any{c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.AddressLine,
		c.PostalCode, c.City, c.Country, c.RegistrationDate, c.IsActive}
}

type Product struct {
	ID            int64
	Name          string
	Code          string
	CategoryID    int64
	SupplierID    int64
	Price         decimal.Decimal
	Cost          decimal.Decimal
	StockQuantity int
	MinStockLevel int
	Description   string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Product) Values() []any {
	return []any{p.ID, p.Name, p.Code, p.CategoryID, p.SupplierID, p.Price, p.Cost,
		p.StockQuantity, p.MinStockLevel, p.Description, p.IsActive, p.CreatedAt, p.UpdatedAt}
}

type Sale struct {
	ID             int64
	CustomerID     int64
	SaleDate       time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string
	PaymentStatus  string
	SalesRepID     *int64
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s Sale) Values() []any {
	return []any{s.ID, s.CustomerID, s.SaleDate, s.Subtotal, s.TaxAmount,
		s.DiscountAmount, s.TotalAmount, s.PaymentMethod, s.PaymentStatus,
		s.SalesRepID, s.Notes, s.CreatedAt, s.UpdatedAt}
}

type SaleItem struct {
	ID              int64
	SaleID          int64
	ProductID       int64
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent int
	LineTotal       decimal.Decimal
}

func (i SaleItem) Values() []any {
	return []any{i.ID, i.SaleID, i.ProductID, i.Quantity, i.UnitPrice,
		i.DiscountPercent, i.LineTotal}
}
