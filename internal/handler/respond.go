package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/apperr"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/middleware"
)

// respondServiceError maps the core error kinds onto HTTP statuses. Messages
// on kind-carrying errors are client-safe; anything else gets a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case apperr.KindForbidden:
		middleware.RespondWithError(c, http.StatusForbidden, err.Error())
	case apperr.KindConflict:
		middleware.RespondWithError(c, http.StatusConflict, err.Error())
	case apperr.KindUnprocessable:
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case apperr.KindInvalidInput:
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
