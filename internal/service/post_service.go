package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bbs-server/internal/model"
)

const (
	maxTitleLength   = 100
	maxContentLength = 1000

	// duplicateWindow — окно, внутри которого идентичный текст от того же
	// автора считается дублем
	duplicateWindow = 30 * time.Second
)

// PostStore — запросы хранилища, нужные сервису публикации
type PostStore interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]model.PostView, error)
	HasRecentDuplicate(ctx context.Context, authorID uuid.UUID, content string, window time.Duration) (bool, error)
	GetBannedIP(ctx context.Context, ip string) (model.BannedIP, error)
}

// PostService проводит пост через очистку, проверку бана по IP и
// защиту от дублей перед сохранением
type PostService struct {
	store PostStore
}

// NewPostService создает сервис публикации постов
func NewPostService(store PostStore) *PostService {
	return &PostService{store: store}
}

// Create публикует пост от имени автора.
// clientIP — адрес из запроса; пустая строка допустима (IP определить
// не удалось), тогда пост сохраняется без адреса и без проверки бана.
func (s *PostService) Create(ctx context.Context, author model.User, req model.CreatePostRequest, clientIP string) (model.Post, error) {
	if !author.IsActive {
		return model.Post{}, model.ErrUserInactive
	}

	title := strings.TrimSpace(Sanitize(req.Title))
	content := strings.TrimSpace(Sanitize(req.Content))

	if content == "" {
		return model.Post{}, fmt.Errorf("%w: content is required", model.ErrInvalidInput)
	}
	if len([]rune(content)) > maxContentLength {
		return model.Post{}, fmt.Errorf("%w: content exceeds %d characters", model.ErrInvalidInput, maxContentLength)
	}
	if len([]rune(title)) > maxTitleLength {
		return model.Post{}, fmt.Errorf("%w: title exceeds %d characters", model.ErrInvalidInput, maxTitleLength)
	}

	if clientIP != "" {
		banned, err := s.store.GetBannedIP(ctx, clientIP)
		switch {
		case errors.Is(err, model.ErrNotFound):
			// Адрес не банили
		case err != nil:
			return model.Post{}, fmt.Errorf("check banned ip: %w", err)
		case banned.Blocked():
			log.Warn().Str("ip", clientIP).Str("author", author.Username).Msg("post rejected: banned ip")
			return model.Post{}, model.ErrIPBanned
		}
	}

	dup, err := s.store.HasRecentDuplicate(ctx, author.ID, content, duplicateWindow)
	if err != nil {
		return model.Post{}, fmt.Errorf("check duplicate: %w", err)
	}
	if dup {
		return model.Post{}, model.ErrDuplicatePost
	}

	post := model.Post{
		AuthorID: author.ID,
		Content:  content,
	}
	if title != "" {
		post.Title = &title
	}
	if clientIP != "" {
		post.IPAddress = &clientIP
	}

	created, err := s.store.CreatePost(ctx, post)
	if err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}

	log.Info().Int64("post_id", created.ID).Str("author", author.Username).Msg("post created")
	return created, nil
}

// List возвращает страницу постов, новые сверху
func (s *PostService) List(ctx context.Context, limit, offset int) ([]model.PostView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListPosts(ctx, limit, offset)
}
