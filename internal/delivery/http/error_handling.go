package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bbs-server/internal/model"
)

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Error: message})
}

// handleServiceError преобразует ошибки сервисного слоя в HTTP-ответы
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrIPBanned):
		abortWithError(c, http.StatusForbidden, "Posting from your IP address is restricted. Operator approval is required.")
	case errors.Is(err, model.ErrDuplicatePost):
		abortWithError(c, http.StatusTooManyRequests, "Identical posts cannot be submitted in quick succession.")
	case errors.Is(err, model.ErrUserInactive):
		abortWithError(c, http.StatusForbidden, "User account is disabled")
	case errors.Is(err, model.ErrUserNotFound), errors.Is(err, model.ErrPostNotFound), errors.Is(err, model.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Resource not found")
	default:
		log.Error().Err(err).Msg("unhandled internal error")
		abortWithError(c, http.StatusInternalServerError, "An unexpected internal error occurred")
	}
}
