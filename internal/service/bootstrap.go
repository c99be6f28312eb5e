package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
)

// BootstrapStore — запросы хранилища для начальной загрузки
type BootstrapStore interface {
	HasAdminOp(ctx context.Context) (bool, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
}

// BootstrapAdmin создает учетную запись оператора, если в системе нет
// ни одного admin_op. Повышение до admin_op недоступно через команды,
// поэтому без этой записи доску некому администрировать.
func BootstrapAdmin(ctx context.Context, store BootstrapStore, username, password string) error {
	exists, err := store.HasAdminOp(ctx)
	if err != nil {
		return fmt.Errorf("check existing operators: %w", err)
	}
	if exists {
		return nil
	}
	if username == "" || password == "" {
		log.Warn().Msg("no admin_op user exists and ADMIN_USERNAME/ADMIN_PASSWORD are not set")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash operator password: %w", err)
	}

	id := uuid.New()
	now := time.Now()
	displayHash, err := NewDisplayHash(id, username, now)
	if err != nil {
		return fmt.Errorf("generate display hash: %w", err)
	}

	level := privilege.AdminOp
	_, err = store.CreateUser(ctx, model.User{
		ID:          id,
		Username:    username,
		Password:    string(hash),
		Level:       level,
		IDColor:     level.Color(),
		DisplayHash: displayHash,
		IsActive:    true,
	})
	if err != nil {
		return fmt.Errorf("create operator account: %w", err)
	}

	log.Info().Str("username", username).Msg("bootstrap admin_op user created")
	return nil
}
