package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/redis"
)

const accountViewKeyPrefix = "account:view:"

// AccountReadRepository serves bank account read views. Single-account reads
// go through a Redis cache warmed on every cold read; the listing always hits
// PostgreSQL. Mutating services invalidate the cache after every balance or
// detail change.
type AccountReadRepository struct {
	db    *sql.DB
	cache *redis.ViewCache[models.AccountView]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: redis.NewViewCache[models.AccountView](redisClient, 0),
	}
}

func accountViewKey(id int64) string {
	return fmt.Sprintf("%s%d", accountViewKeyPrefix, id)
}

// GetByID returns an account with its owner joined in, trying Redis first.
func (r *AccountReadRepository) GetByID(ctx context.Context, id int64) (*models.AccountView, error) {
	if view, ok := r.cache.Get(ctx, accountViewKey(id)); ok {
		return view, nil
	}

	query := `
		SELECT a.id, a.user_id, a.bank_name, a.account_number, a.balance, a.created_at,
		       u.id, u.name, u.email, u.created_at
		FROM bank_accounts a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	var view models.AccountView
	var owner models.UserView
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.UserID, &view.BankName, &view.AccountNumber, &view.Balance, &view.CreatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bank account with ID %d: %w", id, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account %d: %w", id, err)
	}
	view.Owner = &owner

	r.CacheAccountView(ctx, &view)
	return &view, nil
}

// List returns all accounts with owners. Zero rows is reported as ErrNoAccounts.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.AccountView, error) {
	query := `
		SELECT a.id, a.user_id, a.bank_name, a.account_number, a.balance, a.created_at,
		       u.id, u.name, u.email, u.created_at
		FROM bank_accounts a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	var views []models.AccountView
	for rows.Next() {
		var view models.AccountView
		var owner models.UserView
		if err := rows.Scan(
			&view.ID, &view.UserID, &view.BankName, &view.AccountNumber, &view.Balance, &view.CreatedAt,
			&owner.ID, &owner.Name, &owner.Email, &owner.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		view.Owner = &owner
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	if len(views) == 0 {
		return nil, ErrNoAccounts
	}
	return views, nil
}

// CacheAccountView stores or refreshes the Redis read model for an account.
func (r *AccountReadRepository) CacheAccountView(ctx context.Context, view *models.AccountView) {
	r.cache.Set(ctx, accountViewKey(view.ID), view)
}

// InvalidateAccountView removes the cached view after a mutation. The next
// read repopulates it from PostgreSQL.
func (r *AccountReadRepository) InvalidateAccountView(ctx context.Context, id int64) {
	r.cache.Delete(ctx, accountViewKey(id))
}
