package repository

import (
	"context"

	"github.com/fintrack/scheme-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type schemeRepository struct {
	db *sqlx.DB
}

func NewSchemeRepository(db *sqlx.DB) SchemeRepository {
	return &schemeRepository{db: db}
}

func (r *schemeRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		INSERT INTO schemes (id, holder_id, scheme_type, total_amount, duration_weeks, start_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.HolderID,
		schedule.SchemeType,
		schedule.TotalAmount,
		schedule.DurationWeeks,
		schedule.StartDate,
		schedule.Status,
		schedule.CreatedAt,
	)

	return err
}

func (r *schemeRepository) GetByHolderID(ctx context.Context, holderID string) (*domain.Schedule, error) {
	query := `
		SELECT id, holder_id, scheme_type, total_amount, duration_weeks, start_date, status, created_at
		FROM schemes
		WHERE holder_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var schedule domain.Schedule
	err := r.db.GetContext(ctx, &schedule, query, holderID)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}
