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

// UserManager defines the user operations used by UserHandler.
type UserManager interface {
	Create(ctx context.Context, in service.CreateUserInput) (*models.User, error)
	Fetch(ctx context.Context, userID, principalID string) (*models.User, error)
	Update(ctx context.Context, userID, principalID string, patch service.UpdateUserPatch) (*models.User, error)
	Delete(ctx context.Context, userID, principalID string) error
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	users UserManager
}

type CreateUserRequest struct {
	Name        string         `json:"name" validate:"required"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	PhoneNumber string         `json:"phoneNumber" validate:"omitempty,e164"`
	Address     models.Address `json:"address" validate:"required"`
}

// UpdateUserRequest uses pointers so an absent field is distinguishable from
// a present-but-empty one; the service relies on that distinction.
type UpdateUserRequest struct {
	Name        *string         `json:"name"`
	Email       *string         `json:"email" validate:"omitempty,email"`
	PhoneNumber *string         `json:"phoneNumber"`
	Address     *models.Address `json:"address"`
}

func NewUserHandler(users UserManager) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	principalID, _ := middleware.GetUserID(c)

	if !utils.ValidateUserID(userID) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.users.Fetch(c.Request.Context(), userID, principalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")
	principalID, _ := middleware.GetUserID(c)

	if !utils.ValidateUserID(userID) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.users.Update(c.Request.Context(), userID, principalID, service.UpdateUserPatch{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")
	principalID, _ := middleware.GetUserID(c)

	if !utils.ValidateUserID(userID) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.users.Delete(c.Request.Context(), userID, principalID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
