package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bbs-server/internal/model"
)

const callerKey = "caller"

// CallerMiddleware извлекает идентичность вызывающего из Bearer-токена
// и загружает актуального пользователя из хранилища. Выпуск токенов —
// забота внешнего сервиса аутентификации; здесь токен только декодируется.
func (h *Handler) CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		userID, err := h.parseToken(parts[1])
		if err != nil {
			log.Warn().Err(err).Msg("token verification failed")
			abortWithError(c, http.StatusUnauthorized, "Token is invalid or malformed")
			return
		}

		// Уровень привилегий и флаг активности берем из хранилища,
		// а не из токена: команды могли изменить их после выпуска токена
		user, err := h.store.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unknown user")
			return
		}
		if !user.IsActive {
			abortWithError(c, http.StatusForbidden, "User account is disabled")
			return
		}

		c.Set(callerKey, user)
		c.Next()
	}
}

// parseToken проверяет подпись и извлекает ID пользователя из claims
func (h *Handler) parseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject missing: %w", err)
	}
	return uuid.Parse(sub)
}

// caller возвращает пользователя, положенного middleware в контекст
func caller(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
