package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeNewSubscriber NotificationType = "new_subscriber"
	NotificationTypePurchase      NotificationType = "purchase"
	NotificationTypeTip           NotificationType = "tip"
	NotificationTypeComment       NotificationType = "comment"
	NotificationTypeNewContent    NotificationType = "new_content"
)

type Notification struct {
	ID        string           `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `json:"title"`
	Message   string           `gorm:"not null" json:"message"`
	Data      string           `gorm:"type:jsonb;default:'{}'" json:"data"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
