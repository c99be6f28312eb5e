package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bbs-server/internal/model"
	"bbs-server/internal/privilege"
)

// CreatePost сохраняет новый пост и возвращает его с присвоенным номером
func (s *Store) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	query := `
		INSERT INTO posts (author_id, title, content, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, author_id, title, content, ip_address, created_at
	`

	row := s.q.QueryRow(ctx, query, post.AuthorID, post.Title, post.Content, post.IPAddress, time.Now())

	var created model.Post
	err := row.Scan(&created.ID, &created.AuthorID, &created.Title, &created.Content, &created.IPAddress, &created.CreatedAt)
	if err != nil {
		return model.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return created, nil
}

// ListPosts возвращает посты вместе с публичными данными авторов,
// новые сверху
func (s *Store) ListPosts(ctx context.Context, limit, offset int) ([]model.PostView, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.content, p.created_at,
		       u.username AS author_name, u.id_color AS author_color, u.display_hash AS author_hash
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`

	var posts []model.PostView
	if err := pgxscan.Select(ctx, s.q, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	return posts, nil
}

// DeletePost удаляет один пост по номеру
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// DeletePostsByAuthorLevel удаляет все посты авторов заданного уровня
func (s *Store) DeletePostsByAuthorLevel(ctx context.Context, level privilege.Level) (int64, error) {
	query := `
		DELETE FROM posts
		WHERE author_id IN (SELECT id FROM users WHERE privilege_level = $1)
	`

	tag, err := s.q.Exec(ctx, query, level)
	if err != nil {
		return 0, fmt.Errorf("delete posts by author level: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeletePostsMatching удаляет посты, содержащие подстроку в заголовке,
// тексте или номере
func (s *Store) DeletePostsMatching(ctx context.Context, pattern string) (int64, error) {
	query := `
		DELETE FROM posts
		WHERE title ILIKE $1 ESCAPE '\'
		   OR content ILIKE $1 ESCAPE '\'
		   OR id::text LIKE $1 ESCAPE '\'
	`

	like := "%" + escapeLike(pattern) + "%"
	tag, err := s.q.Exec(ctx, query, like)
	if err != nil {
		return 0, fmt.Errorf("delete posts matching: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ClearPosts удаляет все посты и сбрасывает последовательность номеров
// к начальному значению. Вызывается внутри транзакции команды, поэтому
// подсчет и TRUNCATE атомарны.
func (s *Store) ClearPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}

	if _, err := s.q.Exec(ctx, `TRUNCATE TABLE posts RESTART IDENTITY`); err != nil {
		return 0, fmt.Errorf("truncate posts: %w", err)
	}
	return count, nil
}

// GetPostIP возвращает IP-адрес, записанный на посте.
// Пустая строка означает, что IP не был сохранен.
func (s *Store) GetPostIP(ctx context.Context, id int64) (string, error) {
	var ip *string
	err := s.q.QueryRow(ctx, `SELECT ip_address FROM posts WHERE id = $1`, id).Scan(&ip)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrPostNotFound
		}
		return "", fmt.Errorf("select post ip: %w", err)
	}
	if ip == nil {
		return "", nil
	}
	return *ip, nil
}

// HasRecentDuplicate сообщает, публиковал ли автор идентичный текст
// за последние window секунд
func (s *Store) HasRecentDuplicate(ctx context.Context, authorID uuid.UUID, content string, window time.Duration) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM posts
			WHERE author_id = $1 AND content = $2 AND created_at >= $3
		)
	`

	var exists bool
	since := time.Now().Add(-window)
	if err := s.q.QueryRow(ctx, query, authorID, content, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("check duplicate post: %w", err)
	}
	return exists, nil
}

// escapeLike экранирует спецсимволы шаблона LIKE в пользовательском вводе
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
