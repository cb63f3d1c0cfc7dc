package httputil

import "github.com/shopspring/decimal"

// FormatDecimal renders d keeping its scale, so 1234.50 is sent as "1234.50".
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// FormatDecimalPtr is FormatDecimal for optional values.
func FormatDecimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := FormatDecimal(*d)
	return &s
}
