package postgres

import (
	"context"
	"database/sql"

	"healthbot/internal/domain"
)

// ReportRepo implements repository.ReportRepository
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// SaveReport stores report metadata, the file itself stays with the messenger
func (r *ReportRepo) SaveReport(ctx context.Context, report domain.Report) error {
	query := `
		INSERT INTO reports (id, phone, title, file_id, file_name)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, report.ID, report.Phone, report.Title, report.FileID, report.FileName)
	return err
}

// ListReports returns the newest reports of a user
func (r *ReportRepo) ListReports(ctx context.Context, phone string, limit int) ([]domain.Report, error) {
	query := `
		SELECT id, phone, title, file_id, file_name, created_at
		FROM reports
		WHERE phone = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, phone, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.Phone, &rep.Title, &rep.FileID, &rep.FileName, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}

	return reports, rows.Err()
}

// CountReports returns how many reports a user has
func (r *ReportRepo) CountReports(ctx context.Context, phone string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports WHERE phone = $1`, phone).Scan(&count)
	return count, err
}

// CleanOldReports deletes reports older than the given number of days
func (r *ReportRepo) CleanOldReports(ctx context.Context, days int) (int64, error) {
	query := `
		DELETE FROM reports
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	res, err := r.db.ExecContext(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
