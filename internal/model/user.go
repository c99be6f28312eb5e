package model

import (
	"time"

	"github.com/google/uuid"

	"bbs-server/internal/privilege"
)

// User представляет пользователя доски
type User struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Username    string          `json:"username" db:"username"`
	Password    string          `json:"-" db:"password_hash"` // Не возвращаем хеш пароля в JSON
	Level       privilege.Level `json:"privilege_level" db:"privilege_level"`
	IDColor     string          `json:"id_color" db:"id_color"`
	DisplayHash string          `json:"display_hash" db:"display_hash"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
