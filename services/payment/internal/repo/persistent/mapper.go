package persistent

import (
	"etn-patron/services/payment/internal/entity"
	"etn-patron/services/payment/internal/model"
)

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:             m.ID,
		SenderID:       m.SenderID,
		RecipientID:    m.RecipientID,
		ContentID:      m.ContentID,
		SubscriptionID: m.SubscriptionID,
		Type:           m.Type,
		Amount:         m.Amount,
		TxHash:         m.TxHash,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
	}
}

func ToTransactionModel(e *entity.Transaction) *model.TransactionModel {
	if e == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:             e.ID,
		SenderID:       e.SenderID,
		RecipientID:    e.RecipientID,
		ContentID:      e.ContentID,
		SubscriptionID: e.SubscriptionID,
		Type:           e.Type,
		Amount:         e.Amount,
		TxHash:         e.TxHash,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
	}
}

func ToSubscriptionEntity(m *model.SubscriptionModel) *entity.Subscription {
	if m == nil {
		return nil
	}

	return &entity.Subscription{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatorID: m.CreatorID,
		IsActive:  m.IsActive,
		PricePaid: m.PricePaid,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToSubscriptionModel(e *entity.Subscription) *model.SubscriptionModel {
	if e == nil {
		return nil
	}

	return &model.SubscriptionModel{
		ID:        e.ID,
		UserID:    e.UserID,
		CreatorID: e.CreatorID,
		IsActive:  e.IsActive,
		PricePaid: e.PricePaid,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
