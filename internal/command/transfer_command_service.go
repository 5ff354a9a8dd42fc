package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/events"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
)

// AccountViewInvalidator drops stale account read views after a balance change.
type AccountViewInvalidator interface {
	InvalidateAccountView(ctx context.Context, id int64)
}

// EventPublisher emits domain events to a stream. Publishing is best-effort:
// command services log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransferCommandService moves money between two bank accounts as a single
// atomic database transaction and records it. The store is injected so tests
// can substitute a fake transaction handle per case.
type TransferCommandService struct {
	store        repository.TxRunner
	accountViews AccountViewInvalidator
	publisher    EventPublisher
}

func NewTransferCommandService(store repository.TxRunner, accountViews AccountViewInvalidator, publisher EventPublisher) *TransferCommandService {
	return &TransferCommandService{store: store, accountViews: accountViews, publisher: publisher}
}

// Transfer debits the source account, credits the destination account, and
// inserts the transaction record, all inside one database transaction. The
// step order is load-bearing: the source account is fetched and its balance
// checked before the destination is even looked up, so every later write
// operates on validated state. Row-level locks taken by AccountForUpdate keep
// two concurrent transfers from double-spending the same source balance.
//
// Either all three writes commit or none do; a failure at any step rolls the
// transaction back and no balance change is observable.
func (s *TransferCommandService) Transfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error) {
	var created *models.Transaction

	err := s.store.InTransaction(ctx, func(tx repository.Tx) error {
		source, err := tx.AccountForUpdate(ctx, cmd.SourceAccountID)
		if err != nil {
			return err
		}
		if source.Balance < cmd.Amount {
			return repository.ErrInsufficientFunds
		}

		destination, err := tx.AccountForUpdate(ctx, cmd.DestinationAccountID)
		if err != nil {
			return err
		}

		if err := tx.UpdateAccountBalance(ctx, source.ID, source.Balance-cmd.Amount); err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, destination.ID, destination.Balance+cmd.Amount); err != nil {
			return err
		}

		created, err = tx.CreateTransaction(ctx, cmd.SourceAccountID, cmd.DestinationAccountID, cmd.Amount)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if s.accountViews != nil {
		s.accountViews.InvalidateAccountView(ctx, cmd.SourceAccountID)
		s.accountViews.InvalidateAccountView(ctx, cmd.DestinationAccountID)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.TransactionEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
			TransactionID:        created.ID,
			SourceAccountID:      cmd.SourceAccountID,
			DestinationAccountID: cmd.DestinationAccountID,
			Amount:               cmd.Amount,
		}); err != nil {
			slog.Warn("Failed to publish transaction.created event", "error", err)
		}
	}
	return created, nil
}
