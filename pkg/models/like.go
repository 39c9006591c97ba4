package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like targets exactly one of a content item or a comment. Rows are
// hard-deleted on untoggle so the unique indexes and the derived like
// counts stay exact. Postgres treats NULLs as distinct, so each composite
// index only bites for its own target kind.
type Like struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_content;uniqueIndex:idx_likes_user_comment" json:"user_id"`
	ContentID *string   `gorm:"type:uuid;uniqueIndex:idx_likes_user_content" json:"content_id,omitempty"`
	CommentID *string   `gorm:"type:uuid;uniqueIndex:idx_likes_user_comment" json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
