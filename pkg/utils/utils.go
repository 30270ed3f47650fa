package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the customer-facing date format (MMM DD, YYYY).
const DateLayout = "Jan 02, 2006"

// CurrentWeek calculates how many full calendar weeks have elapsed since the
// scheme start date, truncated toward zero. Never negative: a scheme that
// has not started yet is in week 0.
func CurrentWeek(startDate time.Time, now time.Time) int {
	if now.Before(startDate) {
		return 0
	}
	return int(now.Sub(startDate) / (7 * 24 * time.Hour))
}

// NextDueDate calculates when the next unpaid week's installment is due.
// Week N's installment is due N*7 days after the start date, so with
// paidWeeks weeks covered the next due date is (paidWeeks+1) weeks out.
func NextDueDate(startDate time.Time, paidWeeks int) time.Time {
	return startDate.AddDate(0, 0, 7*(paidWeeks+1))
}

// RoundCurrency rounds to the nearest whole currency unit, half up.
// Display-boundary helper only; calculators keep exact values.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// FormatDate renders a date for customer-facing messages.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
