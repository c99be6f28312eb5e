package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bbs-server/internal/model"
)

// BanIP создает запись бана для адреса, если ее еще нет.
// Повторный бан уже существующего адреса — no-op: строка не дублируется
// и существующий флаг одобрения не затирается.
func (s *Store) BanIP(ctx context.Context, ip, reason string) (bool, error) {
	query := `
		INSERT INTO banned_ips (ip_address, is_approved_by_admin, reason, banned_at)
		VALUES ($1, FALSE, $2, $3)
		ON CONFLICT (ip_address) DO NOTHING
	`

	tag, err := s.q.Exec(ctx, query, ip, reason, time.Now())
	if err != nil {
		return false, fmt.Errorf("insert banned ip: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetBannedIP возвращает запись бана для адреса
func (s *Store) GetBannedIP(ctx context.Context, ip string) (model.BannedIP, error) {
	query := `
		SELECT ip_address, is_approved_by_admin, reason, banned_at
		FROM banned_ips
		WHERE ip_address = $1
	`

	var b model.BannedIP
	err := s.q.QueryRow(ctx, query, ip).Scan(&b.IPAddress, &b.IsApprovedByAdmin, &b.Reason, &b.BannedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BannedIP{}, model.ErrNotFound
		}
		return model.BannedIP{}, fmt.Errorf("select banned ip: %w", err)
	}
	return b, nil
}

// SetBanApproval выставляет флаг одобрения для адреса.
// Это единственная возможность консоли оператора, которую ядро обязано
// предоставлять: одобрить (разрешить постинг) или отклонить бан.
func (s *Store) SetBanApproval(ctx context.Context, ip string, approved bool) error {
	query := `UPDATE banned_ips SET is_approved_by_admin = $2 WHERE ip_address = $1`

	tag, err := s.q.Exec(ctx, query, ip, approved)
	if err != nil {
		return fmt.Errorf("update ban approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ApproveAllBans помечает все забаненные адреса одобренными
// (разрешенными к постингу)
func (s *Store) ApproveAllBans(ctx context.Context) (int64, error) {
	query := `UPDATE banned_ips SET is_approved_by_admin = TRUE WHERE is_approved_by_admin = FALSE`

	tag, err := s.q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("approve all bans: %w", err)
	}
	return tag.RowsAffected(), nil
}
