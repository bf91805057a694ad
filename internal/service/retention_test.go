package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthbot/internal/testutil"
)

func TestRetentionService_CleanupOldData(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockReportRepository)
			mockRepo.On("CleanOldReports", mock.Anything, ReportRetentionDays).Return(int64(3), tt.mockError)

			service := NewRetentionService(mockRepo, new(testutil.MockSessionPruner), time.Hour, testutil.NewTestLogger())

			err := service.CleanupOldData(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestRetentionService_PruneSessions(t *testing.T) {
	pruner := new(testutil.MockSessionPruner)
	pruner.On("Prune", 30*time.Minute).Return(2)

	service := NewRetentionService(new(testutil.MockReportRepository), pruner, 30*time.Minute, testutil.NewTestLogger())

	assert.Equal(t, 2, service.PruneSessions())
	pruner.AssertExpectations(t)
}
