package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeSubscription        TransactionType = "subscription"
	TransactionTypePurchase            TransactionType = "purchase"
	TransactionTypeTip                 TransactionType = "tip"
	TransactionTypeCreatorRegistration TransactionType = "creator_registration"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
)

// Transaction is the append-only ledger of confirmed on-chain payments.
// Rows are written only after the chain verifier has accepted the hash and
// are never updated afterwards, except to attach the subscription created
// by a subscription payment.
type Transaction struct {
	ID             string            `gorm:"type:uuid;primary_key" json:"id"`
	SenderID       string            `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID    *string           `gorm:"type:uuid;index" json:"recipient_id,omitempty"`
	ContentID      *string           `gorm:"type:uuid;index" json:"content_id,omitempty"`
	SubscriptionID *string           `gorm:"type:uuid" json:"subscription_id,omitempty"`
	Type           TransactionType   `gorm:"type:varchar(30);not null" json:"type"`
	Amount         string            `gorm:"type:numeric(78,0);not null" json:"amount"` // wei
	TxHash         string            `gorm:"uniqueIndex;not null" json:"tx_hash"`
	Status         TransactionStatus `gorm:"type:varchar(20);default:'completed'" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
