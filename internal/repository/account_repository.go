package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vaultbank/api/internal/models"
)

// AccountRepository handles bank account CRUD outside the transfer flow.
// Balance mutations that must be atomic (deposit, withdraw, transfer) go
// through the Store's transaction handle instead.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (user_id, bank_name, account_number, balance, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.UserID, account.BankName, account.AccountNumber, account.Balance).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bank account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.BankAccount, error) {
	query := `
		SELECT id, user_id, bank_name, account_number, balance, created_at
		FROM bank_accounts
		WHERE id = $1
	`
	var account models.BankAccount
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.UserID, &account.BankName,
		&account.AccountNumber, &account.Balance, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bank account with ID %d: %w", id, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account %d: %w", id, err)
	}
	return &account, nil
}

// ListByUserID returns all accounts owned by a user. An empty result is not
// an error here: it feeds the user detail view, not the accounts listing.
func (r *AccountRepository) ListByUserID(ctx context.Context, userID int64) ([]models.BankAccount, error) {
	query := `
		SELECT id, user_id, bank_name, account_number, balance, created_at
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		var account models.BankAccount
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.BankName,
			&account.AccountNumber, &account.Balance, &account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, account *models.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET bank_name = $2, account_number = $3, balance = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		account.ID, account.BankName, account.AccountNumber, account.Balance)
	if err != nil {
		return fmt.Errorf("failed to update bank account %d: %w", account.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("bank account with ID %d: %w", account.ID, ErrAccountNotFound)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bank account %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("bank account with ID %d: %w", id, ErrAccountNotFound)
	}
	return nil
}
