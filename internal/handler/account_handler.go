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

// AccountManager defines the account operations used by AccountHandler.
type AccountManager interface {
	Create(ctx context.Context, userID, name, accountType string) (*models.Account, error)
	List(ctx context.Context, userID string) ([]models.Account, error)
	Fetch(ctx context.Context, accountNumber, userID string) (*models.Account, error)
	Update(ctx context.Context, accountNumber, userID string, patch service.UpdateAccountPatch) (*models.Account, error)
	Delete(ctx context.Context, accountNumber, userID string) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts AccountManager
}

type CreateAccountRequest struct {
	Name        string `json:"name" validate:"required"`
	AccountType string `json:"accountType" validate:"required,oneof=personal"`
}

type UpdateAccountRequest struct {
	Name        string `json:"name"`
	AccountType string `json:"accountType" validate:"omitempty,oneof=personal"`
}

type ListAccountsResponse struct {
	Accounts []models.Account `json:"accounts"`
}

func NewAccountHandler(accounts AccountManager) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), userID, req.Name, req.AccountType)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	accounts, err := h.accounts.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}

	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: accounts})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	userID, _ := middleware.GetUserID(c)

	if !utils.ValidateAccountNumber(accountNumber) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account number format")
		return
	}

	account, err := h.accounts.Fetch(c.Request.Context(), accountNumber, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	userID, _ := middleware.GetUserID(c)

	if !utils.ValidateAccountNumber(accountNumber) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account number format")
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

	account, err := h.accounts.Update(c.Request.Context(), accountNumber, userID, service.UpdateAccountPatch{
		Name:        req.Name,
		AccountType: req.AccountType,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	userID, _ := middleware.GetUserID(c)

	if !utils.ValidateAccountNumber(accountNumber) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account number format")
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), accountNumber, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
