package database

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Converters for the loosely typed row maps Query returns. Each driver hands
// numbers and flags back differently (int64, []byte, bool, 0/1), so pool
// preloading goes through these instead of type-asserting per provider.

func AsInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case uint64:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		n, _ := strconv.ParseInt(string(t), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}

func AsBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case int:
		return t != 0
	case []byte:
		return string(t) == "1" || string(t) == "true"
	case string:
		return t == "1" || t == "true"
	default:
		return false
	}
}

func AsDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero
		}
		return d
	case []byte:
		d, err := decimal.NewFromString(string(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(t)
	case int64:
		return decimal.NewFromInt(t)
	case driver.Valuer:
		// pgx numeric values implement Valuer and render as strings.
		dv, err := t.Value()
		if err != nil {
			return decimal.Zero
		}
		return AsDecimal(dv)
	default:
		d, err := decimal.NewFromString(fmt.Sprintf("%v", t))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}
