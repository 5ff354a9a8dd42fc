package repository

import (
	"database/sql"
	"fmt"
)

// schema is applied at startup. Statements are idempotent so repeated boots
// against the same database are safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		profile_type   TEXT NOT NULL,
		profile_number TEXT NOT NULL,
		address        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bank_accounts (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL REFERENCES users(id),
		bank_name      TEXT NOT NULL,
		account_number TEXT NOT NULL,
		balance        NUMERIC(15,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id                     BIGSERIAL PRIMARY KEY,
		source_account_id      BIGINT NOT NULL REFERENCES bank_accounts(id),
		destination_account_id BIGINT NOT NULL REFERENCES bank_accounts(id),
		amount                 NUMERIC(15,2) NOT NULL,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS images (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT NOT NULL REFERENCES users(id),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		url         TEXT NOT NULL,
		file_id     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bank_accounts_user_id ON bank_accounts(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_source ON transactions(source_account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_destination ON transactions(destination_account_id)`,
}

// Migrate creates the tables and indexes the API expects.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
