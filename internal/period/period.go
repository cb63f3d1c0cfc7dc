// Package period handles the monthly periods expenses and budgets are grouped by.
//
// A period is identified externally as "yyyy-MM" and stored as the first day of the month
// in UTC.
package period

import (
	"strings"
	"time"

	"github.com/allisson/fintrack/internal/errors"
)

const (
	// Layout is the external representation of a period.
	Layout = "2006-01"

	// DateLayout is the external representation of a calendar date.
	DateLayout = "2006-01-02"
)

// ErrInvalidPeriod indicates a period that is not in yyyy-MM form.
var ErrInvalidPeriod = errors.Wrap(errors.ErrInvalidInput, "period must be in yyyy-MM format")

// Parse converts "yyyy-MM" into the first day of that month.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidPeriod
	}
	return t, nil
}

// Start returns the first day of the month containing t, in UTC.
func Start(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Format renders a period start as "yyyy-MM".
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Resolve picks the period of an expense: the explicit value when given, otherwise the
// month of date, otherwise the month of now.
func Resolve(value string, date *time.Time, now time.Time) (time.Time, error) {
	if strings.TrimSpace(value) != "" {
		return Parse(value)
	}
	if date != nil {
		return Start(*date), nil
	}
	return Start(now), nil
}
