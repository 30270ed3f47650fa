package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack/scheme-engine/internal/domain"
	"github.com/fintrack/scheme-engine/internal/repository"
	customError "github.com/fintrack/scheme-engine/pkg/errors"
)

const BackupTypeDaily = "daily"

// BackupService records backup bookkeeping markers. The actual data export
// is handled by the platform; this only keeps the audit trail.
type BackupService struct {
	eventLog repository.EventLogRepository
	logger   *slog.Logger
}

func NewBackupService(eventLog repository.EventLogRepository, logger *slog.Logger) *BackupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackupService{eventLog: eventLog, logger: logger}
}

// CreateDailyBackup writes the marker record for today's backup run.
func (s *BackupService) CreateDailyBackup(ctx context.Context) (*domain.BackupRecord, error) {
	now := time.Now()
	record := &domain.BackupRecord{
		BackupID:     fmt.Sprintf("backup-%s", now.Format("2006-01-02-15-04-05")),
		BackupType:   BackupTypeDaily,
		IsSuccessful: true,
		Detail:       "holders,schemes,payment_events,notification_log",
		CreatedAt:    now,
	}

	if err := s.eventLog.CreateBackup(ctx, record); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("daily backup recorded", slog.String("backup_id", record.BackupID))

	return record, nil
}
