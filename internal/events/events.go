package events

import "time"

// Event types
const (
	UserCreated = "user.created"

	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	TransactionCreated = "transaction.created"
	BalanceUpdated     = "balance.updated"
)

// Stream names
const (
	UserEventsStream        = "user.events"
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserCreatedEvent struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type AccountCreatedEvent struct {
	AccountID     int64  `json:"accountId"`
	UserID        int64  `json:"userId"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
}

type AccountUpdatedEvent struct {
	AccountID int64 `json:"accountId"`
	UserID    int64 `json:"userId"`
}

type AccountDeletedEvent struct {
	AccountID int64 `json:"accountId"`
}

type TransactionCreatedEvent struct {
	TransactionID        int64   `json:"transactionId"`
	SourceAccountID      int64   `json:"sourceAccountId"`
	DestinationAccountID int64   `json:"destinationAccountId"`
	Amount               float64 `json:"amount"`
}

type BalanceUpdatedEvent struct {
	AccountID  int64   `json:"accountId"`
	NewBalance float64 `json:"newBalance"`
	Change     float64 `json:"change"`
}
