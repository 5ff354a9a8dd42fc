package command

import (
	"context"
	"log/slog"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/events"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
	"github.com/vaultbank/api/internal/utils"
)

// AccountCommandService writes bank account state and keeps the read model
// in sync. Deposits and withdrawals run inside a database transaction with a
// row lock so the balance check and the write cannot interleave with a
// concurrent transfer.
type AccountCommandService struct {
	accounts  *repository.AccountRepository
	users     *repository.UserRepository
	store     repository.TxRunner
	views     AccountViewInvalidator
	publisher EventPublisher
}

func NewAccountCommandService(
	accounts *repository.AccountRepository,
	users *repository.UserRepository,
	store repository.TxRunner,
	views AccountViewInvalidator,
	publisher EventPublisher,
) *AccountCommandService {
	return &AccountCommandService{accounts: accounts, users: users, store: store, views: views, publisher: publisher}
}

func (s *AccountCommandService) publish(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, data); err != nil {
		slog.Warn("Failed to publish account event", "type", eventType, "error", err)
	}
}

// CreateAccount opens a bank account for an existing user. An omitted account
// number is assigned by the service.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.BankAccount, error) {
	if _, err := s.users.GetByID(ctx, cmd.UserID); err != nil {
		return nil, err
	}
	if cmd.AccountNumber == "" {
		cmd.AccountNumber = utils.GenerateAccountNumber()
	}
	account := &models.BankAccount{
		UserID:        cmd.UserID,
		BankName:      cmd.BankName,
		AccountNumber: cmd.AccountNumber,
		Balance:       cmd.Balance,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	s.publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:     account.ID,
		UserID:        account.UserID,
		BankName:      account.BankName,
		AccountNumber: account.AccountNumber,
	})
	return account, nil
}

func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.BankAccount, error) {
	account, err := s.accounts.GetByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	account.BankName = cmd.BankName
	account.AccountNumber = cmd.AccountNumber
	account.Balance = cmd.Balance
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	s.views.InvalidateAccountView(ctx, account.ID)
	s.publish(ctx, events.AccountUpdated, events.AccountUpdatedEvent{AccountID: account.ID, UserID: account.UserID})
	return account, nil
}

func (s *AccountCommandService) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.views.InvalidateAccountView(ctx, id)
	s.publish(ctx, events.AccountDeleted, events.AccountDeletedEvent{AccountID: id})
	return nil
}

// Deposit credits the account. The fetch and the write share one transaction
// and a row lock.
func (s *AccountCommandService) Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.BankAccount, error) {
	if cmd.Amount <= 0 {
		return nil, repository.ErrInvalidAmount
	}
	var account *models.BankAccount
	err := s.store.InTransaction(ctx, func(tx repository.Tx) error {
		var err error
		account, err = tx.AccountForUpdate(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		account.Balance += cmd.Amount
		return tx.UpdateAccountBalance(ctx, account.ID, account.Balance)
	})
	if err != nil {
		return nil, err
	}
	s.views.InvalidateAccountView(ctx, cmd.AccountID)
	s.publish(ctx, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  account.ID,
		NewBalance: account.Balance,
		Change:     cmd.Amount,
	})
	return account, nil
}

// Withdraw debits the account, rejecting the call when the balance is
// insufficient. No state changes on rejection.
func (s *AccountCommandService) Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.BankAccount, error) {
	if cmd.Amount <= 0 {
		return nil, repository.ErrInvalidAmount
	}
	var account *models.BankAccount
	err := s.store.InTransaction(ctx, func(tx repository.Tx) error {
		var err error
		account, err = tx.AccountForUpdate(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if account.Balance < cmd.Amount {
			return repository.ErrInsufficientFunds
		}
		account.Balance -= cmd.Amount
		return tx.UpdateAccountBalance(ctx, account.ID, account.Balance)
	})
	if err != nil {
		return nil, err
	}
	s.views.InvalidateAccountView(ctx, cmd.AccountID)
	s.publish(ctx, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  account.ID,
		NewBalance: account.Balance,
		Change:     -cmd.Amount,
	})
	return account, nil
}
