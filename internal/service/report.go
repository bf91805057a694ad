package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthbot/internal/domain"
	"healthbot/internal/repository"
)

const listLimit = 10

// Asker answers questions about reports
type Asker interface {
	Ask(ctx context.Context, phone, question string) (string, error)
}

// ReportService handles report uploads, listing and questions
type ReportService struct {
	reports repository.ReportRepository
	chat    Asker
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService creates a new report service. chat may be nil when no
// analysis backend is configured.
func NewReportService(reports repository.ReportRepository, chat Asker, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		chat:    chat,
		logger:  logger,
		now:     time.Now,
	}
}

// UploadReport stores the document metadata
func (s *ReportService) UploadReport(ctx context.Context, phone string, doc domain.Document) (domain.CommandResult, error) {
	title := strings.TrimSpace(doc.FileName)
	if title == "" {
		title = "Report " + s.now().Format("2006-01-02 15:04")
	}

	report := domain.Report{
		ID:       uuid.NewString(),
		Phone:    phone,
		Title:    title,
		FileID:   doc.FileID,
		FileName: doc.FileName,
	}
	if err := s.reports.SaveReport(ctx, report); err != nil {
		return domain.CommandResult{}, fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Info("Report uploaded", zap.String("report_id", report.ID))
	return domain.CommandResult{
		OK:      true,
		Payload: fmt.Sprintf("✔ Report uploaded successfully!\nSaved as: %s", title),
	}, nil
}

// ListReports renders the newest reports of the user
func (s *ReportService) ListReports(ctx context.Context, phone string) (domain.CommandResult, error) {
	total, err := s.reports.CountReports(ctx, phone)
	if err != nil {
		return domain.CommandResult{}, fmt.Errorf("failed to count reports: %w", err)
	}
	if total == 0 {
		return domain.CommandResult{OK: true, Payload: "📂 You have no reports yet. Tap 📤 Upload Report to add one."}, nil
	}

	reports, err := s.reports.ListReports(ctx, phone, listLimit)
	if err != nil {
		return domain.CommandResult{}, fmt.Errorf("failed to list reports: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📁 Your reports (%d):\n", total)
	for i, r := range reports {
		fmt.Fprintf(&b, "\n%d. %s — %s", i+1, r.Title, r.CreatedAt.Format("02 Jan 2006"))
	}
	if total > len(reports) {
		fmt.Fprintf(&b, "\n\n…and %d more", total-len(reports))
	}
	return domain.CommandResult{OK: true, Payload: b.String()}, nil
}

// AskReports forwards a question to the analysis backend
func (s *ReportService) AskReports(ctx context.Context, phone, question string) (domain.CommandResult, error) {
	if s.chat == nil {
		return domain.CommandResult{Payload: "💬 Report chat is not available right now."}, nil
	}

	total, err := s.reports.CountReports(ctx, phone)
	if err != nil {
		return domain.CommandResult{}, fmt.Errorf("failed to count reports: %w", err)
	}
	if total == 0 {
		return domain.CommandResult{Payload: "📂 Upload a report first, then ask me about it."}, nil
	}

	answer, err := s.chat.Ask(ctx, phone, question)
	if err != nil {
		return domain.CommandResult{}, err
	}
	return domain.CommandResult{OK: true, Payload: answer}, nil
}
