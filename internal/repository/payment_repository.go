package repository

import (
	"context"
	"time"

	"github.com/fintrack/scheme-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.PaymentEvent) error {
	query := `
		INSERT INTO payment_events (id, holder_id, amount, occurred_at, payment_mode, receipt_ref, bonus, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.HolderID,
		payment.Amount,
		payment.OccurredAt,
		payment.PaymentMode,
		payment.ReceiptRef,
		payment.Bonus,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) ListByHolderID(ctx context.Context, holderID string) ([]*domain.PaymentEvent, error) {
	query := `
		SELECT id, holder_id, amount, occurred_at, payment_mode, receipt_ref, bonus, created_at
		FROM payment_events
		WHERE holder_id = $1
		ORDER BY occurred_at
	`

	var payments []*domain.PaymentEvent
	err := r.db.SelectContext(ctx, &payments, query, holderID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.PaymentEvent, error) {
	query := `
		SELECT id, holder_id, amount, occurred_at, payment_mode, receipt_ref, bonus, created_at
		FROM payment_events
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at
	`

	var payments []*domain.PaymentEvent
	err := r.db.SelectContext(ctx, &payments, query, from, to)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
