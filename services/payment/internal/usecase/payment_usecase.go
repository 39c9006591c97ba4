package usecase

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"etn-patron/pkg/chain"
	"etn-patron/pkg/logger"
	"etn-patron/pkg/queue"
	"etn-patron/services/payment/internal/entity"
	"etn-patron/services/payment/internal/model"
	"etn-patron/services/payment/internal/repo/persistent"

	"gorm.io/gorm"
)

const subscriptionDuration = 30 * 24 * time.Hour

type PaymentInput struct {
	TxHash    string
	Type      string
	ContentID string
	CreatorID string
	Amount    string
}

type PaymentUseCase interface {
	RecordPayment(ctx context.Context, senderID, senderWallet string, input PaymentInput) (*entity.Transaction, error)
	ListUserTransactions(userID, requesterID string, limit, offset int) ([]*entity.Transaction, error)
	GetCreatorEarnings(creatorID string, limit, offset int) (string, []*entity.Transaction, error)

	ListUserSubscriptions(userID, requesterID string, activeOnly bool) ([]*entity.Subscription, error)
	GetSubscriptionStatus(userID, creatorID string) (*entity.Subscription, bool, error)
	SweepExpiredSubscriptions() (int64, error)
}

type paymentUseCase struct {
	paymentRepo persistent.PaymentRepository
	verifier    chain.PaymentVerifier
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPaymentUseCase(
	paymentRepo persistent.PaymentRepository,
	verifier chain.PaymentVerifier,
	queueClient *queue.Client,
	logger *logger.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		paymentRepo: paymentRepo,
		verifier:    verifier,
		queueClient: queueClient,
		logger:      logger,
	}
}

// RecordPayment validates the claimed payment against the expected price,
// verifies the hash on chain, and only then writes the ledger. The client
// is never trusted about what a hash paid for.
func (uc *paymentUseCase) RecordPayment(ctx context.Context, senderID, senderWallet string, input PaymentInput) (*entity.Transaction, error) {
	amount, ok := new(big.Int).SetString(input.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, fmt.Errorf("invalid amount")
	}

	if _, err := uc.paymentRepo.GetTransactionByHash(input.TxHash); err == nil {
		return nil, fmt.Errorf("transaction hash already recorded")
	} else if err != gorm.ErrRecordNotFound {
		uc.logger.Error("Failed to check tx hash: %v", err)
		return nil, fmt.Errorf("failed to record payment")
	}

	txn := &entity.Transaction{
		SenderID: senderID,
		Type:     input.Type,
		Amount:   input.Amount,
		TxHash:   input.TxHash,
		Status:   model.TransactionStatusCompleted,
	}

	switch input.Type {
	case model.TransactionTypePurchase:
		if input.ContentID == "" {
			return nil, fmt.Errorf("purchase requires a content_id")
		}
		info, err := uc.paymentRepo.GetContentInfo(input.ContentID)
		if err != nil {
			return nil, fmt.Errorf("content not found")
		}
		if !info.IsPremium {
			return nil, fmt.Errorf("content is not premium")
		}
		if price, ok := new(big.Int).SetString(info.AccessPrice, 10); !ok || price.Cmp(amount) != 0 {
			return nil, fmt.Errorf("amount does not match the access price")
		}
		txn.ContentID = &input.ContentID
		txn.RecipientID = &info.CreatorID

	case model.TransactionTypeSubscription:
		if input.CreatorID == "" {
			return nil, fmt.Errorf("subscription requires a creator_id")
		}
		subPrice, err := uc.paymentRepo.GetCreatorSubPrice(input.CreatorID)
		if err != nil {
			return nil, fmt.Errorf("creator not found")
		}
		if price, ok := new(big.Int).SetString(subPrice, 10); !ok || price.Cmp(amount) != 0 {
			return nil, fmt.Errorf("amount does not match the subscription price")
		}
		txn.RecipientID = &input.CreatorID

	case model.TransactionTypeTip, model.TransactionTypeCreatorRegistration:
		if input.CreatorID == "" {
			return nil, fmt.Errorf("%s requires a creator_id", input.Type)
		}
		if _, err := uc.paymentRepo.GetCreatorSubPrice(input.CreatorID); err != nil {
			return nil, fmt.Errorf("creator not found")
		}
		txn.RecipientID = &input.CreatorID

	default:
		return nil, fmt.Errorf("unknown payment type: %s", input.Type)
	}

	if err := uc.verifier.VerifyPayment(ctx, input.TxHash, senderWallet, input.Amount); err != nil {
		uc.logger.Warn("Rejected payment %s from %s: %v", input.TxHash, senderWallet, err)
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	switch input.Type {
	case model.TransactionTypePurchase:
		if err := uc.paymentRepo.RecordPurchase(txn); err != nil {
			if err.Error() == "content already purchased" {
				return nil, err
			}
			uc.logger.Error("Failed to record purchase: %v", err)
			return nil, fmt.Errorf("failed to record payment")
		}
		uc.publishEvent(map[string]interface{}{
			"type":       queue.EventPurchase,
			"user_id":    senderID,
			"creator_id": *txn.RecipientID,
			"content_id": input.ContentID,
			"amount":     input.Amount,
		})

	case model.TransactionTypeSubscription:
		sub, err := uc.paymentRepo.RecordSubscription(txn, subscriptionDuration)
		if err != nil {
			uc.logger.Error("Failed to record subscription: %v", err)
			return nil, fmt.Errorf("failed to record payment")
		}
		uc.publishEvent(map[string]interface{}{
			"type":            queue.EventSubscription,
			"user_id":         senderID,
			"creator_id":      *txn.RecipientID,
			"subscription_id": sub.ID,
			"amount":          input.Amount,
		})

	default:
		if err := uc.paymentRepo.RecordTip(txn); err != nil {
			uc.logger.Error("Failed to record %s: %v", input.Type, err)
			return nil, fmt.Errorf("failed to record payment")
		}
		uc.publishEvent(map[string]interface{}{
			"type":       queue.EventTip,
			"user_id":    senderID,
			"creator_id": *txn.RecipientID,
			"amount":     input.Amount,
		})
	}

	return txn, nil
}

func (uc *paymentUseCase) ListUserTransactions(userID, requesterID string, limit, offset int) ([]*entity.Transaction, error) {
	if userID != requesterID {
		return nil, fmt.Errorf("you can only view your own transactions")
	}
	return uc.paymentRepo.ListByUser(userID, limit, offset)
}

func (uc *paymentUseCase) GetCreatorEarnings(creatorID string, limit, offset int) (string, []*entity.Transaction, error) {
	total, err := uc.paymentRepo.SumCreatorEarnings(creatorID)
	if err != nil {
		return "", nil, err
	}

	txns, err := uc.paymentRepo.ListByCreator(creatorID, limit, offset)
	if err != nil {
		return "", nil, err
	}
	return total, txns, nil
}

func (uc *paymentUseCase) ListUserSubscriptions(userID, requesterID string, activeOnly bool) ([]*entity.Subscription, error) {
	if userID != requesterID {
		return nil, fmt.Errorf("you can only view your own subscriptions")
	}
	return uc.paymentRepo.ListUserSubscriptions(userID, activeOnly)
}

// GetSubscriptionStatus reports whether the subscription is live right
// now. A row the sweep has not flipped yet but whose end date has passed
// still reads as inactive.
func (uc *paymentUseCase) GetSubscriptionStatus(userID, creatorID string) (*entity.Subscription, bool, error) {
	sub, err := uc.paymentRepo.GetSubscription(userID, creatorID)
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	active := sub.IsActive && sub.EndDate.After(time.Now())
	return sub, active, nil
}

func (uc *paymentUseCase) SweepExpiredSubscriptions() (int64, error) {
	count, err := uc.paymentRepo.DeactivateExpired(time.Now())
	if err != nil {
		uc.logger.Error("Subscription sweep failed: %v", err)
		return 0, err
	}
	if count > 0 {
		uc.logger.Info("Subscription sweep deactivated %d expired subscriptions", count)
	}
	return count, nil
}

func (uc *paymentUseCase) publishEvent(event map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	if err := uc.queueClient.PublishEvent(event); err != nil {
		uc.logger.Error("Failed to publish event: %v", err)
	}
}
