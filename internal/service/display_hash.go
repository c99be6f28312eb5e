package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewDisplayHash генерирует стабильный 7-символьный публичный
// идентификатор пользователя. Источник — ID, имя, момент создания и
// 16 случайных байт; учетные данные в хеш не попадают никогда.
func NewDisplayHash(id uuid.UUID, username string, createdAt time.Time) (string, error) {
	entropy := make([]byte, 16)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	seed := fmt.Sprintf("%s-%s-%d-%s", id, username, createdAt.UnixNano(), hex.EncodeToString(entropy))
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:7], nil
}
