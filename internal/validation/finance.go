package validation

import (
	"regexp"
	"time"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"
)

var periodRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Period validates an optional "yyyy-MM" string. Empty values pass; combine with Required.
var Period = validation.NewStringRuleWithError(
	func(s string) bool {
		return periodRegex.MatchString(s)
	},
	validation.NewError("validation_period_format", "must be in yyyy-MM format"),
)

// Date validates an optional "yyyy-MM-dd" string.
var Date = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	},
	validation.NewError("validation_date_format", "must be in yyyy-MM-dd format"),
)

// Decimal validates an optional string holding an exact decimal number such as "1234.50".
var Decimal = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := decimal.NewFromString(s)
		return err == nil
	},
	validation.NewError("validation_decimal_format", "must be a decimal number"),
)

// PositiveAmount validates an amount greater than zero. It accepts decimal.Decimal,
// *decimal.Decimal and decimal strings; strings that do not parse are left to Decimal.
var PositiveAmount = validation.By(func(value interface{}) error {
	d, ok := decimalValue(value)
	if !ok {
		return nil
	}
	if !d.IsPositive() {
		return validation.NewError("validation_amount_positive", "must be greater than zero")
	}
	return nil
})

// NonNegativeAmount validates an amount that is zero or more. It accepts the same types
// as PositiveAmount.
var NonNegativeAmount = validation.By(func(value interface{}) error {
	d, ok := decimalValue(value)
	if !ok {
		return nil
	}
	if d.IsNegative() {
		return validation.NewError("validation_amount_non_negative", "must not be negative")
	}
	return nil
})

func decimalValue(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, false
		}
		return *v, true
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	case *string:
		if v == nil {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(*v)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}
