package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

const (
	SchemeStatusActive    = "active"
	SchemeStatusCompleted = "completed"
	SchemeStatusClosed    = "closed"
)

// Schedule describes the fixed terms of one holder's savings scheme.
// Immutable once created; the weekly amount is always derived, never stored.
type Schedule struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	HolderID      string          `json:"holder_id" db:"holder_id"`
	SchemeType    string          `json:"scheme_type" db:"scheme_type"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	DurationWeeks int             `json:"duration_weeks" db:"duration_weeks"`
	StartDate     time.Time       `json:"start_date" db:"start_date"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// NewSchedule validates the scheme terms and returns an immutable Schedule.
func NewSchedule(holderID, schemeType string, totalAmount decimal.Decimal, durationWeeks int, startDate time.Time) (*Schedule, error) {
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidSchedule("total amount must be greater than zero")
	}
	if durationWeeks <= 0 {
		return nil, customError.WrapInvalidSchedule("duration weeks must be greater than zero")
	}

	return &Schedule{
		ID:            uuid.New(),
		HolderID:      holderID,
		SchemeType:    schemeType,
		TotalAmount:   totalAmount,
		DurationWeeks: durationWeeks,
		StartDate:     startDate,
		Status:        SchemeStatusActive,
		CreatedAt:     time.Now(),
	}, nil
}

// WeeklyAmount returns the per-week installment. Exact division, no rounding:
// rounding happens at the message render boundary only.
func (s *Schedule) WeeklyAmount() decimal.Decimal {
	return s.TotalAmount.Div(decimal.NewFromInt(int64(s.DurationWeeks)))
}
