package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/vaultbank/api/internal/models"
)

// Tx is the atomic transaction handle handed to transactional flows. Every
// operation runs on the same database transaction; either all writes commit
// or none do.
type Tx interface {
	// AccountForUpdate fetches a bank account by id and takes a row-level
	// lock on it for the remainder of the transaction.
	AccountForUpdate(ctx context.Context, id int64) (*models.BankAccount, error)
	UpdateAccountBalance(ctx context.Context, id int64, newBalance float64) error
	CreateTransaction(ctx context.Context, sourceAccountID, destinationAccountID int64, amount float64) (*models.Transaction, error)
	CreateUser(ctx context.Context, user *models.User) error
	CreateProfile(ctx context.Context, profile *models.Profile) error
}

// TxRunner runs a function inside one database transaction. If fn returns an
// error the transaction is rolled back, otherwise it is committed.
type TxRunner interface {
	InTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// Store is the PostgreSQL-backed TxRunner.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTransaction(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback()

	if err := fn(&sqlTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// sqlTx implements Tx on top of *sql.Tx.
type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) AccountForUpdate(ctx context.Context, id int64) (*models.BankAccount, error) {
	query := `
		SELECT id, user_id, bank_name, account_number, balance, created_at
		FROM bank_accounts
		WHERE id = $1
		FOR UPDATE
	`
	var account models.BankAccount
	err := t.tx.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.UserID, &account.BankName,
		&account.AccountNumber, &account.Balance, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account with ID %d: %w", id, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", id, err)
	}
	return &account, nil
}

func (t *sqlTx) UpdateAccountBalance(ctx context.Context, id int64, newBalance float64) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE bank_accounts SET balance = $2 WHERE id = $1`, id, newBalance)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("account with ID %d: %w", id, ErrAccountNotFound)
	}
	return nil
}

func (t *sqlTx) CreateTransaction(ctx context.Context, sourceAccountID, destinationAccountID int64, amount float64) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (source_account_id, destination_account_id, amount, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	transaction := &models.Transaction{
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		Amount:               amount,
	}
	err := t.tx.QueryRowContext(ctx, query, sourceAccountID, destinationAccountID, amount).
		Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return transaction, nil
}

func (t *sqlTx) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := t.tx.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (t *sqlTx) CreateProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, profile_type, profile_number, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := t.tx.QueryRowContext(ctx, query,
		profile.UserID, profile.ProfileType, profile.ProfileNumber, profile.Address).
		Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}
