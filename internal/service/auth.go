package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"healthbot/internal/domain"
	"healthbot/internal/repository"
)

// maxPasswordLength is the longest input bcrypt accepts
const maxPasswordLength = 72

// AuthService handles phone accounts and passwords.
// A new password is only saved on first entry and verified on the next one.
type AuthService struct {
	accounts repository.AccountRepository
	logger   *zap.Logger
	cost     int
}

// NewAuthService creates a new auth service
func NewAuthService(accounts repository.AccountRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		logger:   logger,
		cost:     bcrypt.DefaultCost,
	}
}

// CheckAccount reports whether the phone has an account and whether it needs a password
func (s *AuthService) CheckAccount(ctx context.Context, phone string) (domain.Account, error) {
	u, err := s.accounts.GetAccount(ctx, phone)
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	if u == nil {
		return domain.Account{}, nil
	}

	return domain.Account{
		Exists:           true,
		RequiresPassword: u.PasswordHash != "" || !u.Verified,
		Name:             u.Name,
	}, nil
}

// Login checks the password, or stores it when the account has none yet
func (s *AuthService) Login(ctx context.Context, phone, password, name string) (domain.LoginResult, error) {
	if password == "" || len(password) > maxPasswordLength {
		return domain.LoginResult{Status: domain.LoginRejected}, nil
	}

	u, err := s.accounts.GetAccount(ctx, phone)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("failed to get account: %w", err)
	}

	if u == nil || u.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			return domain.LoginResult{}, fmt.Errorf("failed to hash password: %w", err)
		}

		if u == nil {
			err = s.accounts.CreateAccount(ctx, domain.User{Phone: phone, Name: name, PasswordHash: string(hash)})
		} else {
			err = s.accounts.SetPasswordHash(ctx, phone, string(hash))
		}
		if err != nil {
			return domain.LoginResult{}, fmt.Errorf("failed to save password: %w", err)
		}

		s.logger.Info("Password saved", zap.Bool("new_account", u == nil))
		return domain.LoginResult{Status: domain.LoginSaved, Name: name}, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.LoginResult{Status: domain.LoginRejected}, nil
	}
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("failed to compare password: %w", err)
	}

	if !u.Verified {
		if err := s.accounts.MarkVerified(ctx, phone); err != nil {
			return domain.LoginResult{}, fmt.Errorf("failed to mark verified: %w", err)
		}
	}

	if u.Name != "" {
		name = u.Name
	}
	return domain.LoginResult{Status: domain.LoginSuccess, Name: name}, nil
}
