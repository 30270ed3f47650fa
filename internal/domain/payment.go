package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentEvent is one installment payment made by a holder. Events are
// append-only and never mutated; all progress figures are recomputed from
// the full event set.
type PaymentEvent struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	HolderID    string          `json:"holder_id" db:"holder_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	OccurredAt  time.Time       `json:"occurred_at" db:"occurred_at"`
	PaymentMode string          `json:"payment_mode" db:"payment_mode"`
	ReceiptRef  string          `json:"receipt_ref" db:"receipt_ref"`
	Bonus       decimal.Decimal `json:"bonus" db:"bonus"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreatePaymentRequest struct {
	HolderID    string          `json:"holder_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentMode string          `json:"payment_mode" validate:"required"`
	ReceiptRef  string          `json:"receipt_ref"`
	Bonus       decimal.Decimal `json:"bonus"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

type CreatePaymentResponse struct {
	Payment       *PaymentEvent `json:"payment"`
	DispatchState string        `json:"dispatch_state"`
}
