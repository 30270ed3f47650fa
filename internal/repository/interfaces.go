package repository

import (
	"context"
	"time"

	"github.com/fintrack/scheme-engine/internal/domain"
)

// HolderRepository defines the interface for holder data operations
type HolderRepository interface {
	// Create creates a new holder
	Create(ctx context.Context, holder *domain.Holder) error

	// GetByHolderID retrieves a holder by its business ID
	GetByHolderID(ctx context.Context, holderID string) (*domain.Holder, error)

	// ListActive retrieves all active holders
	ListActive(ctx context.Context) ([]*domain.Holder, error)

	// Update updates a holder
	Update(ctx context.Context, holder *domain.Holder) error
}

// SchemeRepository defines the interface for scheme schedule operations
type SchemeRepository interface {
	// Create creates a new schedule
	Create(ctx context.Context, schedule *domain.Schedule) error

	// GetByHolderID retrieves the schedule for a holder
	GetByHolderID(ctx context.Context, holderID string) (*domain.Schedule, error)
}

// PaymentRepository defines the interface for payment event operations.
// Payment events are append-only: no update or delete operations exist.
type PaymentRepository interface {
	// Create appends a new payment event
	Create(ctx context.Context, payment *domain.PaymentEvent) error

	// ListByHolderID retrieves all payment events for a holder, ordered by
	// occurrence time
	ListByHolderID(ctx context.Context, holderID string) ([]*domain.PaymentEvent, error)

	// ListByPeriod retrieves all payment events in [from, to), ordered by
	// occurrence time
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.PaymentEvent, error)
}

// EventLogRepository is the append-only sink for notification, analytics,
// report and backup records. At-least-once semantics are acceptable.
type EventLogRepository interface {
	// AppendNotification logs a dispatched notification
	AppendNotification(ctx context.Context, record *domain.NotificationRecord) error

	// AppendAnalytics logs an analytics event
	AppendAnalytics(ctx context.Context, event *domain.AnalyticsEvent) error

	// CreateReport stores a monthly aggregate report
	CreateReport(ctx context.Context, report *domain.MonthlyReport) error

	// CreateBackup stores a backup bookkeeping record
	CreateBackup(ctx context.Context, record *domain.BackupRecord) error
}
