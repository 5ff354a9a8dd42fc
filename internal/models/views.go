package models

import "time"

// UserView is the read-optimised projection of a user.
// It never exposes PasswordHash and carries the joined profile.
type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Profile   *Profile  `json:"profile,omitempty"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// UserDetailView additionally carries the user's bank accounts.
type UserDetailView struct {
	UserView
	BankAccounts []BankAccount `json:"bankAccounts"`
}

// AccountView is the read-optimised projection of a bank account with its owner.
type AccountView struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber"`
	Balance       float64   `json:"balance"`
	Owner         *UserView `json:"user,omitempty"`
	CreatedAt     time.Time `json:"createdTimestamp"`
}

// TransactionView is the read-optimised projection of a transaction with the
// source and destination account snapshots joined in.
type TransactionView struct {
	ID                   int64       `json:"id"`
	SourceAccountID      int64       `json:"sourceAccountId"`
	DestinationAccountID int64       `json:"destinationAccountId"`
	Amount               float64     `json:"amount"`
	SourceAccount        BankAccount `json:"bankAccountSource"`
	DestinationAccount   BankAccount `json:"bankAccountDestination"`
	CreatedAt            time.Time   `json:"createdTimestamp"`
}
