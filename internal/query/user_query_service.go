package query

import (
	"context"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
)

type UserQueryService struct {
	users    *repository.UserRepository
	accounts *repository.AccountRepository
}

func NewUserQueryService(users *repository.UserRepository, accounts *repository.AccountRepository) *UserQueryService {
	return &UserQueryService{users: users, accounts: accounts}
}

// GetUser returns a user with profile and bank accounts joined in.
func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserDetailView, error) {
	view, err := s.users.GetViewByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accounts.ListByUserID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	return &models.UserDetailView{UserView: *view, BankAccounts: accounts}, nil
}

// ListUsers returns all users with profiles. Unlike accounts and
// transactions, an empty user table is an empty 200 response.
func (s *UserQueryService) ListUsers(ctx context.Context) ([]models.UserView, error) {
	return s.users.List(ctx)
}
