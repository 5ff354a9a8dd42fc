package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdTimestamp"`
}

type Profile struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	ProfileType   string `json:"profileType"`
	ProfileNumber string `json:"profileNumber"`
	Address       string `json:"address"`
}

type BankAccount struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber"`
	Balance       float64   `json:"balance"`
	CreatedAt     time.Time `json:"createdTimestamp"`
}

// Transaction records a completed transfer between two bank accounts.
// Rows are insert-only: once created a transaction is never updated or deleted.
type Transaction struct {
	ID                   int64     `json:"id"`
	SourceAccountID      int64     `json:"sourceAccountId"`
	DestinationAccountID int64     `json:"destinationAccountId"`
	Amount               float64   `json:"amount"`
	CreatedAt            time.Time `json:"createdTimestamp"`
}

type Image struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	FileID      string    `json:"fileId"`
	CreatedAt   time.Time `json:"createdTimestamp"`
}
