package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
)

func newBalanceTestService(store *fakeStore, views *fakeInvalidator) *AccountCommandService {
	return NewAccountCommandService(nil, nil, store, views, nil)
}

func TestDeposit(t *testing.T) {
	tests := []struct {
		name        string
		accountID   int64
		amount      float64
		wantBalance float64
		wantErr     error
	}{
		{name: "credits the balance", accountID: 1, amount: 100, wantBalance: 600},
		{name: "rejects zero amount", accountID: 1, amount: 0, wantBalance: 500, wantErr: repository.ErrInvalidAmount},
		{name: "rejects negative amount", accountID: 1, amount: -10, wantBalance: 500, wantErr: repository.ErrInvalidAmount},
		{name: "missing account", accountID: 99, amount: 100, wantBalance: 500, wantErr: repository.ErrAccountNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(&models.BankAccount{ID: 1, Balance: 500})
			views := &fakeInvalidator{}
			svc := newBalanceTestService(store, views)

			account, err := svc.Deposit(context.Background(), cqrs.DepositCommand{
				AccountID: tt.accountID,
				Amount:    tt.amount,
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, account)
				assert.Empty(t, views.invalidated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBalance, account.Balance)
				assert.Equal(t, []int64{tt.accountID}, views.invalidated)
			}
			assert.Equal(t, tt.wantBalance, store.balance(1))
		})
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name        string
		amount      float64
		wantBalance float64
		wantErr     error
	}{
		{name: "debits the balance", amount: 100, wantBalance: 400},
		{name: "allows draining the account", amount: 500, wantBalance: 0},
		{name: "rejects overdraft", amount: 500.01, wantBalance: 500, wantErr: repository.ErrInsufficientFunds},
		{name: "rejects zero amount", amount: 0, wantBalance: 500, wantErr: repository.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(&models.BankAccount{ID: 1, Balance: 500})
			views := &fakeInvalidator{}
			svc := newBalanceTestService(store, views)

			account, err := svc.Withdraw(context.Background(), cqrs.WithdrawCommand{
				AccountID: 1,
				Amount:    tt.amount,
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, account)
				assert.Empty(t, views.invalidated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBalance, account.Balance)
			}
			assert.Equal(t, tt.wantBalance, store.balance(1))
		})
	}
}
