package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthbot/internal/domain"
	"healthbot/internal/testutil"
)

func TestReportService_UploadReport(t *testing.T) {
	tests := []struct {
		name          string
		doc           domain.Document
		wantTitle     string
		mockError     error
		expectedError bool
	}{
		{
			name:      "named file",
			doc:       domain.Document{FileID: "f1", FileName: "blood.pdf"},
			wantTitle: "blood.pdf",
		},
		{
			name:      "photo without name",
			doc:       domain.Document{FileID: "f2"},
			wantTitle: "Report 2024-06-01 15:00",
		},
		{
			name:          "repository error",
			doc:           domain.Document{FileID: "f3", FileName: "x.pdf"},
			wantTitle:     "x.pdf",
			mockError:     errors.New("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockReportRepository)
			repo.On("SaveReport", mock.Anything, mock.MatchedBy(func(r domain.Report) bool {
				_, err := uuid.Parse(r.ID)
				return err == nil && r.Phone == "+1" && r.Title == tt.wantTitle && r.FileID == tt.doc.FileID
			})).Return(tt.mockError)

			s := NewReportService(repo, nil, testutil.NewTestLogger())
			s.now = testutil.Clock()

			res, err := s.UploadReport(context.Background(), "+1", tt.doc)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, res.OK)
				assert.Equal(t, "✔ Report uploaded successfully!\nSaved as: "+tt.wantTitle, res.Payload)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestReportService_ListReports(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		repo := new(testutil.MockReportRepository)
		repo.On("CountReports", mock.Anything, "+1").Return(0, nil)

		res, err := NewReportService(repo, nil, testutil.NewTestLogger()).ListReports(context.Background(), "+1")

		assert.NoError(t, err)
		assert.Contains(t, res.Payload, "no reports yet")
		repo.AssertNotCalled(t, "ListReports", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("more than listed", func(t *testing.T) {
		created := time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)
		repo := new(testutil.MockReportRepository)
		repo.On("CountReports", mock.Anything, "+1").Return(12, nil)
		repo.On("ListReports", mock.Anything, "+1", listLimit).Return([]domain.Report{
			{Title: "X-ray", CreatedAt: created},
			{Title: "Blood test", CreatedAt: created},
		}, nil)

		res, err := NewReportService(repo, nil, testutil.NewTestLogger()).ListReports(context.Background(), "+1")

		assert.NoError(t, err)
		assert.Contains(t, res.Payload, "Your reports (12)")
		assert.Contains(t, res.Payload, "1. X-ray — 20 May 2024")
		assert.Contains(t, res.Payload, "and 10 more")
	})

	t.Run("count error", func(t *testing.T) {
		repo := new(testutil.MockReportRepository)
		repo.On("CountReports", mock.Anything, "+1").Return(0, errors.New("db"))

		_, err := NewReportService(repo, nil, testutil.NewTestLogger()).ListReports(context.Background(), "+1")

		assert.Error(t, err)
	})
}

func TestReportService_AskReports(t *testing.T) {
	t.Run("relays answer", func(t *testing.T) {
		repo := new(testutil.MockReportRepository)
		repo.On("CountReports", mock.Anything, "+1").Return(2, nil)
		asker := new(testutil.MockAsker)
		asker.On("Ask", mock.Anything, "+1", "Is my sugar ok?").Return("Your HbA1c is 5.4%, normal.", nil)

		res, err := NewReportService(repo, asker, testutil.NewTestLogger()).AskReports(context.Background(), "+1", "Is my sugar ok?")

		assert.NoError(t, err)
		assert.True(t, res.OK)
		assert.Equal(t, "Your HbA1c is 5.4%, normal.", res.Payload)
		asker.AssertExpectations(t)
	})

	t.Run("no reports", func(t *testing.T) {
		repo := new(testutil.MockReportRepository)
		repo.On("CountReports", mock.Anything, "+1").Return(0, nil)
		asker := new(testutil.MockAsker)

		res, err := NewReportService(repo, asker, testutil.NewTestLogger()).AskReports(context.Background(), "+1", "hi")

		assert.NoError(t, err)
		assert.False(t, res.OK)
		asker.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no backend", func(t *testing.T) {
		repo := new(testutil.MockReportRepository)

		res, err := NewReportService(repo, nil, testutil.NewTestLogger()).AskReports(context.Background(), "+1", "hi")

		assert.NoError(t, err)
		assert.False(t, res.OK)
	})

	t.Run("backend error", func(t *testing.T) {
		repo := new(testutil.MockReportRepository)
		repo.On("CountReports", mock.Anything, "+1").Return(1, nil)
		asker := new(testutil.MockAsker)
		asker.On("Ask", mock.Anything, "+1", "hi").Return("", errors.New("502"))

		_, err := NewReportService(repo, asker, testutil.NewTestLogger()).AskReports(context.Background(), "+1", "hi")

		assert.Error(t, err)
	})
}
