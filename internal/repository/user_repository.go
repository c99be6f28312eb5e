package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
)

const userColumns = `id, username, password_hash, privilege_level, id_color, display_hash, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Level,
		&u.IDColor,
		&u.DisplayHash,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// CreateUser создает нового пользователя.
// Уровень, цвет и display_hash должны быть уже заполнены вызывающим.
func (s *Store) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	query := `
		INSERT INTO users (id, username, password_hash, privilege_level, id_color, display_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + userColumns

	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	created, err := scanUser(s.q.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Password,
		user.Level,
		user.IDColor,
		user.DisplayHash,
		user.IsActive,
		now,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.User{}, model.ErrUserAlreadyExists
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// GetUserByID получает пользователя по ID
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("select user by id: %w", err)
	}
	return user, nil
}

// GetUserByUsername получает пользователя по имени
func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(s.q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("select user by username: %w", err)
	}
	return user, nil
}

// UpdateUserLevel меняет уровень привилегий и цвет ID пользователя
func (s *Store) UpdateUserLevel(ctx context.Context, username string, level privilege.Level, color string) error {
	query := `
		UPDATE users
		SET privilege_level = $2, id_color = $3, updated_at = $4
		WHERE username = $1
	`

	tag, err := s.q.Exec(ctx, query, username, level, color, time.Now())
	if err != nil {
		return fmt.Errorf("update user level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// UpdateUserColor задает явный цвет ID, минуя цвет уровня
func (s *Store) UpdateUserColor(ctx context.Context, username string, color string) error {
	query := `UPDATE users SET id_color = $2, updated_at = $3 WHERE username = $1`

	tag, err := s.q.Exec(ctx, query, username, color, time.Now())
	if err != nil {
		return fmt.Errorf("update user color: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// SetUserActive включает или отключает аккаунт
func (s *Store) SetUserActive(ctx context.Context, username string, active bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = $3 WHERE username = $1`

	tag, err := s.q.Exec(ctx, query, username, active, time.Now())
	if err != nil {
		return fmt.Errorf("update user active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// ReviveUsers реактивирует всех отключенных пользователей
func (s *Store) ReviveUsers(ctx context.Context) (int64, error) {
	query := `UPDATE users SET is_active = TRUE, updated_at = $1 WHERE is_active = FALSE`

	tag, err := s.q.Exec(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("revive users: %w", err)
	}
	return tag.RowsAffected(), nil
}

// HasAdminOp сообщает, существует ли хотя бы один оператор.
// Используется при начальной загрузке для создания учетной записи оператора.
func (s *Store) HasAdminOp(ctx context.Context) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE privilege_level = $1)`

	var exists bool
	if err := s.q.QueryRow(ctx, query, privilege.AdminOp).Scan(&exists); err != nil {
		return false, fmt.Errorf("check admin_op presence: %w", err)
	}
	return exists, nil
}
