package cqrs

// ---------- User queries ----------

// GetUserQuery fetches a single user by ID with profile and accounts.
type GetUserQuery struct {
	UserID int64
}

// ---------- Account queries ----------

// GetAccountQuery fetches a single bank account with its owner.
type GetAccountQuery struct {
	AccountID int64
}

// ---------- Transaction queries ----------

// GetTransactionQuery fetches a single transaction with account snapshots.
type GetTransactionQuery struct {
	TransactionID int64
}

// ---------- Media queries ----------

// GetImageQuery fetches a single image record.
type GetImageQuery struct {
	ImageID int64
}
