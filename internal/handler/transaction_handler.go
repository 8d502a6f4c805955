package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/middleware"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/service"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/utils"
)

// TransactionManager defines the ledger operations used by TransactionHandler.
type TransactionManager interface {
	Create(ctx context.Context, accountNumber, userID string, in service.CreateTransactionInput) (*models.Transaction, error)
	List(ctx context.Context, accountNumber, userID string) ([]models.Transaction, error)
	Fetch(ctx context.Context, accountNumber, transactionID, userID string) (*models.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactions TransactionManager
}

type CreateTransactionRequest struct {
	Amount    float64 `json:"amount" validate:"required,gte=0.01,lte=10000"`
	Currency  string  `json:"currency" validate:"required,oneof=GBP"`
	Type      string  `json:"type" validate:"required,oneof=credit debit deposit withdrawal"`
	Reference string  `json:"reference"`
}

type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

func NewTransactionHandler(transactions TransactionManager) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	userID, _ := middleware.GetUserID(c)

	if !utils.ValidateAccountNumber(accountNumber) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account number format")
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.transactions.Create(c.Request.Context(), accountNumber, userID, service.CreateTransactionInput{
		Amount:    req.Amount,
		Currency:  req.Currency,
		Type:      req.Type,
		Reference: req.Reference,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	userID, _ := middleware.GetUserID(c)

	if !utils.ValidateAccountNumber(accountNumber) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account number format")
		return
	}

	transactions, err := h.transactions.List(c.Request.Context(), accountNumber, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: transactions})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	transactionID := c.Param("transactionId")
	userID, _ := middleware.GetUserID(c)

	if !utils.ValidateAccountNumber(accountNumber) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account number format")
		return
	}
	if !utils.ValidateTransactionID(transactionID) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	transaction, err := h.transactions.Fetch(c.Request.Context(), accountNumber, transactionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}
