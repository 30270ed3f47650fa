package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgressSnapshot is the derived progress state for one holder at a point
// in time. It is never persisted as truth; it is recomputed on demand from
// the schedule and the full payment event set.
type ProgressSnapshot struct {
	HolderID       string          `json:"holder_id"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	WeeklyAmount   decimal.Decimal `json:"weekly_amount"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	PaidWeeks      int             `json:"paid_weeks"`
	RemainingWeeks int             `json:"remaining_weeks"`
	CurrentWeek    int             `json:"current_week"`
	OverdueWeeks   int             `json:"overdue_weeks"`
	NextDueDate    time.Time       `json:"next_due_date"`
	AsOf           time.Time       `json:"as_of"`
}

// IsComplete reports whether the holder has paid off every week of the scheme.
func (s *ProgressSnapshot) IsComplete() bool {
	return s.RemainingWeeks == 0
}

// OverdueAmount is the cumulative shortfall for the overdue weeks. Zero when
// the holder is on track or ahead.
func (s *ProgressSnapshot) OverdueAmount() decimal.Decimal {
	if s.OverdueWeeks <= 0 {
		return decimal.Zero
	}
	return s.WeeklyAmount.Mul(decimal.NewFromInt(int64(s.OverdueWeeks)))
}

// TotalDue is the overdue amount plus the current week's installment.
func (s *ProgressSnapshot) TotalDue() decimal.Decimal {
	return s.WeeklyAmount.Mul(decimal.NewFromInt(int64(s.OverdueWeeks + 1)))
}
