package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	NotificationKindConfirmation = "payment_confirmation"
	NotificationKindReminder     = "payment_reminder"
)

// Analytics event types
const (
	AnalyticsPaymentCreated = "payment_created"
	AnalyticsHolderUpdated  = "holder_updated"
	AnalyticsDispatchFailed = "dispatch_failed"
)

// NotificationRecord is the write-once log entry for one dispatched message.
type NotificationRecord struct {
	ID            uuid.UUID `json:"id" db:"id"`
	HolderID      string    `json:"holder_id" db:"holder_id"`
	Kind          string    `json:"kind" db:"kind"`
	Message       string    `json:"message" db:"message"`
	ChannelTarget string    `json:"channel_target" db:"channel_target"`
	DispatchedAt  time.Time `json:"dispatched_at" db:"dispatched_at"`
	IsDelivered   bool      `json:"is_delivered" db:"is_delivered"`
}

// AnalyticsEvent is an append-only record of something the pipeline observed.
type AnalyticsEvent struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	EventType   string          `json:"event_type" db:"event_type"`
	HolderID    string          `json:"holder_id" db:"holder_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentMode string          `json:"payment_mode" db:"payment_mode"`
	Detail      string          `json:"detail" db:"detail"`
	OccurredAt  time.Time       `json:"occurred_at" db:"occurred_at"`
}
