package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/repository"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

const reportCacheTTL = 30 * 24 * time.Hour

// ReportService builds the monthly aggregate report over payment activity.
type ReportService struct {
	payments repository.PaymentRepository
	eventLog repository.EventLogRepository
	redis    *redis.Client
	logger   *slog.Logger
}

func NewReportService(
	payments repository.PaymentRepository,
	eventLog repository.EventLogRepository,
	redisClient *redis.Client,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		payments: payments,
		eventLog: eventLog,
		redis:    redisClient,
		logger:   logger,
	}
}

// GenerateMonthlyReport aggregates all payment events in the calendar month
// containing the given time: total amount, transaction count, and average.
// The average is zero when the month has no transactions.
func (s *ReportService) GenerateMonthlyReport(ctx context.Context, month time.Time) (*domain.MonthlyReport, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	to := from.AddDate(0, 1, 0)

	payments, err := s.payments.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	total := decimal.Zero
	for _, payment := range payments {
		total = total.Add(payment.Amount)
	}

	average := decimal.Zero
	if len(payments) > 0 {
		average = total.Div(decimal.NewFromInt(int64(len(payments))))
	}

	report := &domain.MonthlyReport{
		ID:               uuid.New(),
		Month:            from.Format("2006-01"),
		TotalAmount:      total,
		TransactionCount: len(payments),
		AverageAmount:    average,
		CreatedAt:        time.Now(),
	}

	if err := s.eventLog.CreateReport(ctx, report); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheReport(ctx, report)

	s.logger.Info("monthly report generated",
		slog.String("month", report.Month),
		slog.Int("transactions", report.TransactionCount),
	)

	return report, nil
}

// cacheReport is best-effort; the database row is the source of truth.
func (s *ReportService) cacheReport(ctx context.Context, report *domain.MonthlyReport) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	key := fmt.Sprintf("report:monthly:%s", report.Month)
	if err := s.redis.Set(ctx, key, data, reportCacheTTL).Err(); err != nil {
		s.logger.Warn("report cache write failed",
			slog.String("month", report.Month),
			slog.String("error", err.Error()),
		)
	}
}
