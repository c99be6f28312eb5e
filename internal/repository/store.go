package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bbs-server/internal/command"
)

// Querier — общий интерфейс выполнения запросов, которому удовлетворяют
// и pgxpool.Pool, и pgx.Tx. Благодаря ему один и тот же Store работает
// как на пуле напрямую, так и внутри открытой транзакции.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store реализует порт хранилища командного интерпретатора и запросы
// веб-поверхности поверх PostgreSQL
type Store struct {
	q Querier
}

// NewStore создает хранилище поверх пула соединений
func NewStore(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("nil pool provided to store")
	}
	return &Store{q: pool}
}

// TxManager открывает транзакции для командного интерпретатора
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager создает менеджер транзакций
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx выполняет fn внутри одной транзакции: фиксация при nil,
// откат при любой ошибке
func (m *TxManager) WithinTx(ctx context.Context, fn func(command.Store) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Откат после успешного Commit — no-op
	defer tx.Rollback(ctx)

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
