package entity

import "time"

// Content is a published item in a creator's catalog. ContentURL and
// ContentHash are cleared in responses when the viewer is not entitled
// to a premium item. LikesCount is derived from like rows on read and
// never stored.
type Content struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ContentURL  string    `json:"content_url,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	IsPremium   bool      `json:"is_premium"`
	AccessPrice string    `json:"access_price"`
	IsEncrypted bool      `json:"is_encrypted"`
	ViewsCount  int64     `json:"views_count"`
	LikesCount  int64     `json:"likes_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ContentID  string    `json:"content_id"`
	ParentID   *string   `json:"parent_id,omitempty"`
	Body       string    `json:"body"`
	LikesCount int64     `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}
