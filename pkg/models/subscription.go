package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subscription struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_creator" json:"user_id"`
	CreatorID string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_creator;index" json:"creator_id"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	PricePaid string    `gorm:"type:numeric(78,0);default:0" json:"price_paid"` // wei
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
