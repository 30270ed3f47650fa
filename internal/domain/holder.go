package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holder is a customer enrolled in a savings scheme.
type Holder struct {
	ID           uuid.UUID `json:"id" db:"id"`
	HolderID     string    `json:"holder_id" db:"holder_id"`
	Name         string    `json:"name" db:"name"`
	SerialNumber string    `json:"serial_number" db:"serial_number"`
	MobileNumber string    `json:"mobile_number" db:"mobile_number"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CreateHolderRequest provisions a holder together with their scheme.
// DurationWeeks and StartDate are optional; the handler fills in the
// configured default duration and the current time.
type CreateHolderRequest struct {
	HolderID      string          `json:"holder_id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	SerialNumber  string          `json:"serial_number"`
	MobileNumber  string          `json:"mobile_number" validate:"required"`
	SchemeType    string          `json:"scheme_type" validate:"required"`
	TotalAmount   decimal.Decimal `json:"total_amount" validate:"required"`
	DurationWeeks int             `json:"duration_weeks"`
	StartDate     *time.Time      `json:"start_date"`
}

type CreateHolderResponse struct {
	Holder   *Holder   `json:"holder"`
	Schedule *Schedule `json:"schedule"`
}

// UpdateHolderRequest carries a partial holder update. Empty strings leave
// the current value in place; a nil IsActive leaves the flag untouched.
type UpdateHolderRequest struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	MobileNumber string `json:"mobile_number"`
	IsActive     *bool  `json:"is_active"`
}
