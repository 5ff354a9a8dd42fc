package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/redis"
)

const transactionViewKeyPrefix = "transaction:view:"

// transactionViewTTL bounds how stale the embedded account snapshots may be;
// the transaction row itself is immutable.
const transactionViewTTL = 30 * time.Second

// TransactionReadRepository serves transaction reads. Transactions are
// created exclusively through Tx.CreateTransaction inside a database
// transaction; this repository never mutates them. Single-transaction reads
// go through a short-lived Redis cache.
type TransactionReadRepository struct {
	db    *sql.DB
	cache *redis.ViewCache[models.TransactionView]
}

func NewTransactionReadRepository(db *sql.DB, redisClient *goredis.Client) *TransactionReadRepository {
	return &TransactionReadRepository{
		db:    db,
		cache: redis.NewViewCache[models.TransactionView](redisClient, transactionViewTTL),
	}
}

const transactionViewColumns = `
	t.id, t.source_account_id, t.destination_account_id, t.amount, t.created_at,
	src.id, src.user_id, src.bank_name, src.account_number, src.balance, src.created_at,
	dst.id, dst.user_id, dst.bank_name, dst.account_number, dst.balance, dst.created_at
`

func scanTransactionView(row interface {
	Scan(dest ...any) error
}) (*models.TransactionView, error) {
	var view models.TransactionView
	err := row.Scan(
		&view.ID, &view.SourceAccountID, &view.DestinationAccountID, &view.Amount, &view.CreatedAt,
		&view.SourceAccount.ID, &view.SourceAccount.UserID, &view.SourceAccount.BankName,
		&view.SourceAccount.AccountNumber, &view.SourceAccount.Balance, &view.SourceAccount.CreatedAt,
		&view.DestinationAccount.ID, &view.DestinationAccount.UserID, &view.DestinationAccount.BankName,
		&view.DestinationAccount.AccountNumber, &view.DestinationAccount.Balance, &view.DestinationAccount.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// List returns every transaction with the source and destination account
// snapshots joined in. Zero rows is reported as ErrNoTransactions.
func (r *TransactionReadRepository) List(ctx context.Context) ([]models.TransactionView, error) {
	query := `
		SELECT ` + transactionViewColumns + `
		FROM transactions t
		JOIN bank_accounts src ON src.id = t.source_account_id
		JOIN bank_accounts dst ON dst.id = t.destination_account_id
		ORDER BY t.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var views []models.TransactionView
	for rows.Next() {
		view, err := scanTransactionView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if len(views) == 0 {
		return nil, ErrNoTransactions
	}
	return views, nil
}

// GetByID returns one transaction with joined account snapshots, trying the
// Redis cache first.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id int64) (*models.TransactionView, error) {
	cacheKey := fmt.Sprintf("%s%d", transactionViewKeyPrefix, id)
	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT ` + transactionViewColumns + `
		FROM transactions t
		JOIN bank_accounts src ON src.id = t.source_account_id
		JOIN bank_accounts dst ON dst.id = t.destination_account_id
		WHERE t.id = $1
	`
	view, err := scanTransactionView(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction with ID %d: %w", id, ErrTransactionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}

	r.cache.Set(ctx, cacheKey, view)
	return view, nil
}
