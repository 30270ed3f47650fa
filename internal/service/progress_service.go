package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/progress"
	"github.com/fintrack/scheme-engine/internal/repository"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

// ProgressService computes progress snapshots for API consumers with a
// short-lived Redis cache in front. The cache is an optimization only:
// snapshots are always recomputable from the payment event set, and the
// payment handler invalidates the key on every new payment.
type ProgressService struct {
	holders  repository.HolderRepository
	schemes  repository.SchemeRepository
	payments repository.PaymentRepository
	redis    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewProgressService(
	holders repository.HolderRepository,
	schemes repository.SchemeRepository,
	payments repository.PaymentRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{
		holders:  holders,
		schemes:  schemes,
		payments: payments,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func progressCacheKey(holderID string) string {
	return fmt.Sprintf("progress:%s", holderID)
}

// GetProgress returns the holder's progress snapshot as of now.
func (s *ProgressService) GetProgress(ctx context.Context, holderID string, now time.Time) (*domain.ProgressSnapshot, error) {
	if cached := s.fromCache(ctx, holderID); cached != nil {
		return cached, nil
	}

	if _, err := s.holders.GetByHolderID(ctx, holderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapHolderNotFound(holderID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	schedule, err := s.schemes.GetByHolderID(ctx, holderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapSchemeNotFound(holderID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.payments.ListByHolderID(ctx, holderID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	snapshot, err := progress.Compute(schedule, payments, now)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, holderID, snapshot)

	return snapshot, nil
}

// InvalidateProgress drops the cached snapshot after a new payment.
func (s *ProgressService) InvalidateProgress(ctx context.Context, holderID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, progressCacheKey(holderID)).Err(); err != nil {
		s.logger.Warn("progress cache invalidation failed",
			slog.String("holder_id", holderID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *ProgressService) fromCache(ctx context.Context, holderID string) *domain.ProgressSnapshot {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, progressCacheKey(holderID)).Bytes()
	if err != nil {
		return nil
	}
	var snapshot domain.ProgressSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func (s *ProgressService) toCache(ctx context.Context, holderID string, snapshot *domain.ProgressSnapshot) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, progressCacheKey(holderID), data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("progress cache write failed",
			slog.String("holder_id", holderID),
			slog.String("error", err.Error()),
		)
	}
}
