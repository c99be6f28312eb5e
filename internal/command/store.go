package command

import (
	"context"

	"bbs-server/internal/privilege"

	"bbs-server/internal/model"
)

// Store — транзакционный порт хранилища, который обработчики команд
// получают внутри открытой транзакции. Ошибки "не найдено" возвращаются
// сентинелами model.ErrUserNotFound / model.ErrPostNotFound; любая другая
// ошибка считается сбоем хранилища и откатывает команду целиком.
type Store interface {
	// Пользователи
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateUserLevel(ctx context.Context, username string, level privilege.Level, color string) error
	UpdateUserColor(ctx context.Context, username string, color string) error
	SetUserActive(ctx context.Context, username string, active bool) error
	ReviveUsers(ctx context.Context) (int64, error)

	// Посты
	DeletePost(ctx context.Context, id int64) error
	DeletePostsByAuthorLevel(ctx context.Context, level privilege.Level) (int64, error)
	DeletePostsMatching(ctx context.Context, pattern string) (int64, error)
	ClearPosts(ctx context.Context) (int64, error)
	GetPostIP(ctx context.Context, id int64) (string, error)

	// Забаненные IP
	BanIP(ctx context.Context, ip, reason string) (bool, error)
	ApproveAllBans(ctx context.Context) (int64, error)
}

// TxRunner выполняет функцию внутри одной атомарной транзакции.
// Возврат ошибки из fn откатывает все изменения.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(Store) error) error
}
