package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/careops/hospital-api/internal/model"
)

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (full_name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	err := r.db.GetContext(ctx, &account.ID, query,
		account.FullName,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id int64) (*model.Account, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, mapNoRows(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, full_name, email, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		return nil, mapNoRows(err)
	}
	return &account, nil
}
