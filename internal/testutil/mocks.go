package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"healthbot/internal/domain"
)

// MockAccountRepository is a mock for AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetAccount(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAccountRepository) SetPasswordHash(ctx context.Context, phone, hash string) error {
	args := m.Called(ctx, phone, hash)
	return args.Error(0)
}

func (m *MockAccountRepository) MarkVerified(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

// MockReportRepository is a mock for ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ListReports(ctx context.Context, phone string, limit int) ([]domain.Report, error) {
	args := m.Called(ctx, phone, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) CountReports(ctx context.Context, phone string) (int, error) {
	args := m.Called(ctx, phone)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) CleanOldReports(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

// MockAsker is a mock for the report chat backend
type MockAsker struct {
	mock.Mock
}

func (m *MockAsker) Ask(ctx context.Context, phone, question string) (string, error) {
	args := m.Called(ctx, phone, question)
	return args.String(0), args.Error(1)
}

// MockSessionPruner is a mock for session pruning
type MockSessionPruner struct {
	mock.Mock
}

func (m *MockSessionPruner) Prune(idle time.Duration) int {
	args := m.Called(idle)
	return args.Int(0)
}

// MockAuthProvider is a mock for the router's account checks
type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) CheckAccount(ctx context.Context, phone string) (domain.Account, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(domain.Account), args.Error(1)
}

func (m *MockAuthProvider) Login(ctx context.Context, phone, password, name string) (domain.LoginResult, error) {
	args := m.Called(ctx, phone, password, name)
	return args.Get(0).(domain.LoginResult), args.Error(1)
}

// MockCommands is a mock for the report commands
type MockCommands struct {
	mock.Mock
}

func (m *MockCommands) UploadReport(ctx context.Context, phone string, doc domain.Document) (domain.CommandResult, error) {
	args := m.Called(ctx, phone, doc)
	return args.Get(0).(domain.CommandResult), args.Error(1)
}

func (m *MockCommands) ListReports(ctx context.Context, phone string) (domain.CommandResult, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(domain.CommandResult), args.Error(1)
}

func (m *MockCommands) AskReports(ctx context.Context, phone, question string) (domain.CommandResult, error) {
	args := m.Called(ctx, phone, question)
	return args.Get(0).(domain.CommandResult), args.Error(1)
}
