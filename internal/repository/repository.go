package repository

import (
	"context"

	"healthbot/internal/domain"
)

// AccountRepository defines account data operations
type AccountRepository interface {
	// GetAccount returns nil without error when the phone is unknown
	GetAccount(ctx context.Context, phone string) (*domain.User, error)
	CreateAccount(ctx context.Context, user domain.User) error
	SetPasswordHash(ctx context.Context, phone, hash string) error
	MarkVerified(ctx context.Context, phone string) error
}

// ReportRepository defines report data operations
type ReportRepository interface {
	SaveReport(ctx context.Context, report domain.Report) error
	ListReports(ctx context.Context, phone string, limit int) ([]domain.Report, error)
	CountReports(ctx context.Context, phone string) (int, error)
	CleanOldReports(ctx context.Context, days int) (int64, error)
}
