package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyReport aggregates one calendar month of payment activity.
type MonthlyReport struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Month            string          `json:"month" db:"month"` // YYYY-MM
	TotalAmount      decimal.Decimal `json:"total_amount" db:"total_amount"`
	TransactionCount int             `json:"transaction_count" db:"transaction_count"`
	AverageAmount    decimal.Decimal `json:"average_amount" db:"average_amount"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// BackupRecord is the bookkeeping marker for one backup run.
type BackupRecord struct {
	BackupID     string    `json:"backup_id" db:"backup_id"`
	BackupType   string    `json:"backup_type" db:"backup_type"`
	IsSuccessful bool      `json:"is_successful" db:"is_successful"`
	Detail       string    `json:"detail" db:"detail"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
