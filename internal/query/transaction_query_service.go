package query

import (
	"context"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
)

// TransactionQueryService serves transaction reads. Both operations are
// side-effect-free and run outside the transfer's transaction scope.
type TransactionQueryService struct {
	readRepo *repository.TransactionReadRepository
}

func NewTransactionQueryService(readRepo *repository.TransactionReadRepository) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

// ListTransactions returns every transaction with joined account snapshots.
// An empty store is reported as ErrNoTransactions rather than an empty list,
// matching the API's established 404 behavior.
func (s *TransactionQueryService) ListTransactions(ctx context.Context) ([]models.TransactionView, error) {
	return s.readRepo.List(ctx)
}

// GetTransaction returns one transaction with joined account snapshots.
func (s *TransactionQueryService) GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	return s.readRepo.GetByID(ctx, q.TransactionID)
}
