package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Content struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID   string         `gorm:"type:uuid;not null;index" json:"creator_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Category    string         `gorm:"index" json:"category"`
	ContentURL  string         `json:"content_url"`
	ContentHash string         `json:"content_hash"` // IPFS CID for pinned media
	IsPremium   bool           `gorm:"default:false" json:"is_premium"`
	AccessPrice string         `gorm:"type:numeric(78,0);default:0" json:"access_price"` // wei, meaningful only when premium
	IsEncrypted bool           `gorm:"default:false" json:"is_encrypted"`
	ViewsCount  int64          `gorm:"default:0" json:"views_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Creator CreatorProfile `gorm:"foreignKey:CreatorID" json:"-"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
