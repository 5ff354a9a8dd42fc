package repository

import "errors"

// Sentinel errors shared by repositories and services. Handlers map these to
// HTTP status codes with errors.Is; messages wrapped around them keep the
// offending identifier for diagnosability.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("bank account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoTransactions      = errors.New("no transactions were found")
	ErrNoAccounts          = errors.New("bank accounts not found")
	ErrInsufficientFunds   = errors.New("insufficient balance in source account")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrEmailTaken          = errors.New("email has already been used")
	ErrImageNotFound       = errors.New("image not found")
)
