package cqrs

type SignupCommand struct {
	Name          string
	Email         string
	Password      string
	ProfileType   string
	ProfileNumber string
	Address       string
}

type CreateAccountCommand struct {
	UserID        int64
	BankName      string
	AccountNumber string
	Balance       float64
}

type UpdateAccountCommand struct {
	AccountID     int64
	BankName      string
	AccountNumber string
	Balance       float64
}

type DepositCommand struct {
	AccountID int64
	Amount    float64
}

type WithdrawCommand struct {
	AccountID int64
	Amount    float64
}

// TransferCommand moves Amount from the source account to the destination
// account atomically.
type TransferCommand struct {
	SourceAccountID      int64
	DestinationAccountID int64
	Amount               float64
}

type LoginCommand struct {
	Email    string
	Password string
}

type ResetPasswordCommand struct {
	UserID      int64
	NewPassword string
}

type ForgotPasswordCommand struct {
	Email string
}

type UploadImageCommand struct {
	UserID      int64
	FileName    string
	Description string
	Content     []byte
}

type UpdateImageCommand struct {
	ImageID     int64
	Title       string
	Description string
}
