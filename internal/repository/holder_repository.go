package repository

import (
	"context"
	"time"

	"github.com/fintrack/scheme-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type holderRepository struct {
	db *sqlx.DB
}

func NewHolderRepository(db *sqlx.DB) HolderRepository {
	return &holderRepository{db: db}
}

func (r *holderRepository) Create(ctx context.Context, holder *domain.Holder) error {
	query := `
		INSERT INTO holders (id, holder_id, name, serial_number, mobile_number, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		holder.ID,
		holder.HolderID,
		holder.Name,
		holder.SerialNumber,
		holder.MobileNumber,
		holder.IsActive,
		holder.CreatedAt,
		holder.UpdatedAt,
	)

	return err
}

func (r *holderRepository) GetByHolderID(ctx context.Context, holderID string) (*domain.Holder, error) {
	query := `
		SELECT id, holder_id, name, serial_number, mobile_number, is_active, created_at, updated_at
		FROM holders
		WHERE holder_id = $1
	`

	var holder domain.Holder
	err := r.db.GetContext(ctx, &holder, query, holderID)
	if err != nil {
		return nil, err
	}

	return &holder, nil
}

func (r *holderRepository) ListActive(ctx context.Context) ([]*domain.Holder, error) {
	query := `
		SELECT id, holder_id, name, serial_number, mobile_number, is_active, created_at, updated_at
		FROM holders
		WHERE is_active = true
		ORDER BY holder_id
	`

	var holders []*domain.Holder
	err := r.db.SelectContext(ctx, &holders, query)
	if err != nil {
		return nil, err
	}

	return holders, nil
}

func (r *holderRepository) Update(ctx context.Context, holder *domain.Holder) error {
	query := `
		UPDATE holders
		SET name = $2, serial_number = $3, mobile_number = $4, is_active = $5, updated_at = $6
		WHERE holder_id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		holder.HolderID,
		holder.Name,
		holder.SerialNumber,
		holder.MobileNumber,
		holder.IsActive,
		time.Now(),
	)

	return err
}
