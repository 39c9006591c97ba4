package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionTypeSubscription        = "subscription"
	TransactionTypePurchase            = "purchase"
	TransactionTypeTip                 = "tip"
	TransactionTypeCreatorRegistration = "creator_registration"

	TransactionStatusCompleted = "completed"
)

type TransactionModel struct {
	ID             string    `gorm:"type:uuid;primary_key" json:"id"`
	SenderID       string    `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID    *string   `gorm:"type:uuid;index" json:"recipient_id,omitempty"`
	ContentID      *string   `gorm:"type:uuid;index" json:"content_id,omitempty"`
	SubscriptionID *string   `gorm:"type:uuid" json:"subscription_id,omitempty"`
	Type           string    `gorm:"type:varchar(30);not null" json:"type"`
	Amount         string    `gorm:"type:numeric(78,0);not null" json:"amount"`
	TxHash         string    `gorm:"uniqueIndex;not null" json:"tx_hash"`
	Status         string    `gorm:"type:varchar(20);default:'completed'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
