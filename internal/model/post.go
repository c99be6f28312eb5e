package model

import (
	"time"

	"github.com/google/uuid"
)

// Post представляет сообщение на доске.
// Номер поста — плотная последовательность, сбрасываемая командой clear.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Title     *string   `json:"title,omitempty" db:"title"`
	Content   string    `json:"content" db:"content"`
	IPAddress *string   `json:"-" db:"ip_address"` // IP не отдаем наружу
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PostView — пост вместе с публичными данными автора для списка на доске
type PostView struct {
	Post
	AuthorName  string `json:"author_name" db:"author_name"`
	AuthorColor string `json:"author_color" db:"author_color"`
	AuthorHash  string `json:"author_hash" db:"author_hash"`
}

// CreatePostRequest содержит данные формы нового поста
type CreatePostRequest struct {
	Title   string `json:"title" binding:"max=100"`
	Content string `json:"content" binding:"required,max=1000"`
}
