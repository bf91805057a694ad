package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"healthbot/internal/repository"
)

// ReportRetentionDays is how long uploaded reports are kept
const ReportRetentionDays = 365

// SessionPruner drops sessions idle for longer than the given duration
type SessionPruner interface {
	Prune(idle time.Duration) int
}

// RetentionService removes old reports and idle sessions
type RetentionService struct {
	reports  repository.ReportRepository
	sessions SessionPruner
	idleTTL  time.Duration
	logger   *zap.Logger
}

// NewRetentionService creates a new retention service
func NewRetentionService(reports repository.ReportRepository, sessions SessionPruner, idleTTL time.Duration, logger *zap.Logger) *RetentionService {
	return &RetentionService{
		reports:  reports,
		sessions: sessions,
		idleTTL:  idleTTL,
		logger:   logger,
	}
}

// PruneSessions drops idle sessions
func (s *RetentionService) PruneSessions() int {
	n := s.sessions.Prune(s.idleTTL)
	if n > 0 {
		s.logger.Info("Pruned idle sessions", zap.Int("count", n))
	}
	return n
}

// CleanupOldData removes reports past retention
func (s *RetentionService) CleanupOldData(ctx context.Context) error {
	s.logger.Info("Starting cleanup of old reports", zap.Int("retention_days", ReportRetentionDays))

	deleted, err := s.reports.CleanOldReports(ctx, ReportRetentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old reports", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("deleted", deleted))
	return nil
}
