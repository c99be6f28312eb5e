package model

import "errors"

var (
	// Общие ошибки ресурсов
	ErrNotFound     = errors.New("resource not found")
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")

	// Ошибки пользователей и доступа
	ErrUserAlreadyExists = errors.New("user with this username already exists")
	ErrUserInactive      = errors.New("user account is disabled")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")

	// Ошибки публикации
	ErrIPBanned      = errors.New("posting from this IP address is restricted")
	ErrDuplicatePost = errors.New("identical post submitted too recently")

	// Общие ошибки запросов
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Error string `json:"error"`
}
