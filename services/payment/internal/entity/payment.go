package entity

import "time"

// Transaction is one row of the append-only payment ledger. Amounts are
// wei strings. RecipientID is the creator profile receiving the payment.
type Transaction struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    *string   `json:"recipient_id,omitempty"`
	ContentID      *string   `json:"content_id,omitempty"`
	SubscriptionID *string   `json:"subscription_id,omitempty"`
	Type           string    `json:"type"`
	Amount         string    `json:"amount"`
	TxHash         string    `json:"tx_hash"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatorID string    `json:"creator_id"`
	IsActive  bool      `json:"is_active"`
	PricePaid string    `json:"price_paid"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
