package repository

import (
	"context"

	"github.com/fintrack/scheme-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type eventLogRepository struct {
	db *sqlx.DB
}

func NewEventLogRepository(db *sqlx.DB) EventLogRepository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) AppendNotification(ctx context.Context, record *domain.NotificationRecord) error {
	query := `
		INSERT INTO notification_log (id, holder_id, kind, message, channel_target, dispatched_at, is_delivered)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.HolderID,
		record.Kind,
		record.Message,
		record.ChannelTarget,
		record.DispatchedAt,
		record.IsDelivered,
	)

	return err
}

func (r *eventLogRepository) AppendAnalytics(ctx context.Context, event *domain.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (id, event_type, holder_id, amount, payment_mode, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.HolderID,
		event.Amount,
		event.PaymentMode,
		event.Detail,
		event.OccurredAt,
	)

	return err
}

func (r *eventLogRepository) CreateReport(ctx context.Context, report *domain.MonthlyReport) error {
	query := `
		INSERT INTO monthly_reports (id, month, total_amount, transaction_count, average_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.Month,
		report.TotalAmount,
		report.TransactionCount,
		report.AverageAmount,
		report.CreatedAt,
	)

	return err
}

func (r *eventLogRepository) CreateBackup(ctx context.Context, record *domain.BackupRecord) error {
	query := `
		INSERT INTO backups (backup_id, backup_type, is_successful, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.BackupID,
		record.BackupType,
		record.IsSuccessful,
		record.Detail,
		record.CreatedAt,
	)

	return err
}
