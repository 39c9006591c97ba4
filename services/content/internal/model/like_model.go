package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel rows are hard-deleted on untoggle so counts derived from
// COUNT(*) stay exact.
type LikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_content;uniqueIndex:idx_likes_user_comment" json:"user_id"`
	ContentID *string   `gorm:"type:uuid;uniqueIndex:idx_likes_user_content" json:"content_id,omitempty"`
	CommentID *string   `gorm:"type:uuid;uniqueIndex:idx_likes_user_comment" json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
