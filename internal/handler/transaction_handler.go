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

// TransferCommander defines the write-side operations used by TransactionHandler.
type TransferCommander interface {
	Transfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error)
	ListTransactions(ctx context.Context) ([]models.TransactionView, error)
}

type TransactionHandler struct {
	commands TransferCommander
	queries  TransactionQuerier
}

// CreateTransactionRequest is the transfer request body. A transfer to the
// source account itself is rejected here, before it reaches the orchestrator.
type CreateTransactionRequest struct {
	SourceAccountID      int64   `json:"sourceAccountId" validate:"required,gt=0"`
	DestinationAccountID int64   `json:"destinationAccountId" validate:"required,gt=0,nefield=SourceAccountID"`
	Amount               float64 `json:"amount" validate:"required,gt=0"`
}

type CreateTransactionResponse struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
}

func NewTransactionHandler(commands TransferCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.commands.Transfer(c.Request.Context(), cqrs.TransferCommand{
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Amount:               req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAccountNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrInsufficientFunds):
			middleware.RespondWithError(c, http.StatusForbidden, "Insufficient balance in source account")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create transaction")
		}
		return
	}

	c.JSON(http.StatusCreated, CreateTransactionResponse{
		Message:     "Transaction successful",
		Transaction: transaction,
	})
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	views, err := h.queries.ListTransactions(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNoTransactions) {
			middleware.RespondWithError(c, http.StatusNotFound, "No transactions were found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	view, err := h.queries.GetTransaction(c.Request.Context(), cqrs.GetTransactionQuery{TransactionID: id})
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, err.Error())
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": view})
}
