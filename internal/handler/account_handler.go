package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaultbank/api/internal/cqrs"
	"github.com/vaultbank/api/internal/middleware"
	"github.com/vaultbank/api/internal/models"
	"github.com/vaultbank/api/internal/repository"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.BankAccount, error)
	UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.BankAccount, error)
	DeleteAccount(ctx context.Context, id int64) error
	Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.BankAccount, error)
	Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.BankAccount, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error)
	ListAccounts(ctx context.Context) ([]models.AccountView, error)
}

type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// CreateAccountRequest opens an account. When bankAccountNumber is omitted
// the service assigns one.
type CreateAccountRequest struct {
	UserID            int64   `json:"userId" validate:"required,gt=0"`
	BankName          string  `json:"bankName" validate:"required,min=3,max=100"`
	BankAccountNumber string  `json:"bankAccountNumber" validate:"omitempty,min=6,max=20"`
	Balance           float64 `json:"balance" validate:"gte=0"`
}

type UpdateAccountRequest struct {
	BankName          string  `json:"bankName" validate:"required,min=3,max=100"`
	BankAccountNumber string  `json:"bankAccountNumber" validate:"required,min=6,max=20"`
	Balance           float64 `json:"balance" validate:"gte=0"`
}

// AmountRequest carries the deposit/withdraw amount. Positivity is checked by
// the command service, which reports it as a 403 like the rest of the API.
type AmountRequest struct {
	Amount float64 `json:"amount" validate:"required"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		UserID:        req.UserID,
		BankName:      req.BankName,
		AccountNumber: req.BankAccountNumber,
		Balance:       req.Balance,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	views, err := h.queries.ListAccounts(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoAccounts) {
			middleware.RespondWithError(c, http.StatusNotFound, "Bank accounts not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get all bank accounts")
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account id")
		return
	}

	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: id})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Bank account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get bank account")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account id")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		AccountID:     id,
		BankName:      req.BankName,
		AccountNumber: req.BankAccountNumber,
		Balance:       req.Balance,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Bank account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update bank account")
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.commands.DeleteAccount(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Bank account not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete bank account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bank account successfully deleted"})
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	h.mutateBalance(c, h.commands.Deposit)
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	h.mutateBalance(c, func(ctx context.Context, cmd cqrs.DepositCommand) (*models.BankAccount, error) {
		return h.commands.Withdraw(ctx, cqrs.WithdrawCommand(cmd))
	})
}

func (h *AccountHandler) mutateBalance(c *gin.Context, op func(context.Context, cqrs.DepositCommand) (*models.BankAccount, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account id")
		return
	}

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := op(c.Request.Context(), cqrs.DepositCommand{AccountID: id, Amount: req.Amount})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAccountNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Bank account not found")
		case errors.Is(err, repository.ErrInvalidAmount):
			middleware.RespondWithError(c, http.StatusForbidden, "Amount must be greater than zero")
		case errors.Is(err, repository.ErrInsufficientFunds):
			middleware.RespondWithError(c, http.StatusForbidden, "Insufficient balance")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update balance")
		}
		return
	}

	c.JSON(http.StatusOK, account)
}
