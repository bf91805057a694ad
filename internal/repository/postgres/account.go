package postgres

import (
	"context"
	"database/sql"
	"errors"

	"healthbot/internal/domain"
)

// AccountRepo implements repository.AccountRepository
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// GetAccount looks an account up by phone
func (r *AccountRepo) GetAccount(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	var hash sql.NullString
	query := `SELECT phone, name, password_hash, verified, created_at FROM accounts WHERE phone = $1`
	err := r.db.QueryRowContext(ctx, query, phone).Scan(&u.Phone, &u.Name, &hash, &u.Verified, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.PasswordHash = hash.String
	return &u, nil
}

// CreateAccount inserts an account, keeping an existing one untouched
func (r *AccountRepo) CreateAccount(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO accounts (phone, name, password_hash, verified)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (phone) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, user.Phone, user.Name, user.PasswordHash, user.Verified)
	return err
}

// SetPasswordHash stores a new password hash
func (r *AccountRepo) SetPasswordHash(ctx context.Context, phone, hash string) error {
	query := `UPDATE accounts SET password_hash = $2 WHERE phone = $1`
	_, err := r.db.ExecContext(ctx, query, phone, hash)
	return err
}

// MarkVerified flags the account as verified
func (r *AccountRepo) MarkVerified(ctx context.Context, phone string) error {
	query := `UPDATE accounts SET verified = TRUE WHERE phone = $1`
	_, err := r.db.ExecContext(ctx, query, phone)
	return err
}
