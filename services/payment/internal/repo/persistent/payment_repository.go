package persistent

import (
	"fmt"
	"time"

	"etn-patron/services/payment/internal/entity"
	"etn-patron/services/payment/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	GetTransactionByHash(txHash string) (*entity.Transaction, error)
	RecordPurchase(txn *entity.Transaction) error
	RecordSubscription(txn *entity.Transaction, duration time.Duration) (*entity.Subscription, error)
	RecordTip(txn *entity.Transaction) error
	ListByUser(userID string, limit, offset int) ([]*entity.Transaction, error)
	ListByCreator(creatorID string, limit, offset int) ([]*entity.Transaction, error)
	SumCreatorEarnings(creatorID string) (string, error)

	ListUserSubscriptions(userID string, activeOnly bool) ([]*entity.Subscription, error)
	GetSubscription(userID, creatorID string) (*entity.Subscription, error)
	DeactivateExpired(now time.Time) (int64, error)

	GetContentInfo(contentID string) (*ContentInfo, error)
	GetCreatorSubPrice(creatorID string) (string, error)
}

// ContentInfo is the slice of a content row the payment flow needs to
// validate a purchase.
type ContentInfo struct {
	ID          string
	CreatorID   string
	IsPremium   bool
	AccessPrice string
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetTransactionByHash(txHash string) (*entity.Transaction, error) {
	var txnModel model.TransactionModel
	if err := r.db.Where("tx_hash = ?", txHash).First(&txnModel).Error; err != nil {
		return nil, err
	}
	return ToTransactionEntity(&txnModel), nil
}

// RecordPurchase inserts the ledger row after checking the buyer does not
// already own the item. Both happen in one transaction; the unique tx_hash
// index rejects replayed hashes.
func (r *paymentRepository) RecordPurchase(txn *entity.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.TransactionModel{}).
			Where("sender_id = ? AND content_id = ? AND type = ? AND status = ?",
				txn.SenderID, txn.ContentID, model.TransactionTypePurchase, model.TransactionStatusCompleted).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("content already purchased")
		}

		txnModel := ToTransactionModel(txn)
		if err := tx.Create(txnModel).Error; err != nil {
			return err
		}
		*txn = *ToTransactionEntity(txnModel)
		return nil
	})
}

// RecordSubscription upserts the (user, creator) subscription row and
// inserts the ledger row pointing at it, all in one transaction. A renewal
// of a still-active subscription extends the current end date; a lapsed
// one restarts from now.
func (r *paymentRepository) RecordSubscription(txn *entity.Transaction, duration time.Duration) (*entity.Subscription, error) {
	if txn.RecipientID == nil {
		return nil, fmt.Errorf("subscription payment requires a creator")
	}
	creatorID := *txn.RecipientID

	var result *entity.Subscription
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var sub model.SubscriptionModel
		err := tx.Where("user_id = ? AND creator_id = ?", txn.SenderID, creatorID).First(&sub).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			sub = model.SubscriptionModel{
				UserID:    txn.SenderID,
				CreatorID: creatorID,
				IsActive:  true,
				PricePaid: txn.Amount,
				StartDate: now,
				EndDate:   now.Add(duration),
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		case err == nil:
			if sub.IsActive && sub.EndDate.After(now) {
				sub.EndDate = sub.EndDate.Add(duration)
			} else {
				sub.IsActive = true
				sub.StartDate = now
				sub.EndDate = now.Add(duration)
			}
			sub.PricePaid = txn.Amount
			if err := tx.Save(&sub).Error; err != nil {
				return err
			}
		default:
			return err
		}

		txnModel := ToTransactionModel(txn)
		txnModel.SubscriptionID = &sub.ID
		if err := tx.Create(txnModel).Error; err != nil {
			return err
		}

		*txn = *ToTransactionEntity(txnModel)
		result = ToSubscriptionEntity(&sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) RecordTip(txn *entity.Transaction) error {
	txnModel := ToTransactionModel(txn)
	if err := r.db.Create(txnModel).Error; err != nil {
		return err
	}
	*txn = *ToTransactionEntity(txnModel)
	return nil
}

func (r *paymentRepository) ListByUser(userID string, limit, offset int) ([]*entity.Transaction, error) {
	query := r.db.Model(&model.TransactionModel{}).
		Where("sender_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var txnModels []model.TransactionModel
	if err := query.Find(&txnModels).Error; err != nil {
		return nil, err
	}

	txns := make([]*entity.Transaction, 0, len(txnModels))
	for i := range txnModels {
		txns = append(txns, ToTransactionEntity(&txnModels[i]))
	}
	return txns, nil
}

func (r *paymentRepository) ListByCreator(creatorID string, limit, offset int) ([]*entity.Transaction, error) {
	query := r.db.Model(&model.TransactionModel{}).
		Where("recipient_id = ?", creatorID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var txnModels []model.TransactionModel
	if err := query.Find(&txnModels).Error; err != nil {
		return nil, err
	}

	txns := make([]*entity.Transaction, 0, len(txnModels))
	for i := range txnModels {
		txns = append(txns, ToTransactionEntity(&txnModels[i]))
	}
	return txns, nil
}

// SumCreatorEarnings totals the wei amounts in Postgres so the numbers
// never pass through a float.
func (r *paymentRepository) SumCreatorEarnings(creatorID string) (string, error) {
	var total string
	err := r.db.Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0)::text").
		Where("recipient_id = ? AND status = ?", creatorID, model.TransactionStatusCompleted).
		Scan(&total).Error
	if err != nil {
		return "", err
	}
	return total, nil
}

func (r *paymentRepository) ListUserSubscriptions(userID string, activeOnly bool) ([]*entity.Subscription, error) {
	query := r.db.Model(&model.SubscriptionModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var subModels []model.SubscriptionModel
	if err := query.Find(&subModels).Error; err != nil {
		return nil, err
	}

	subs := make([]*entity.Subscription, 0, len(subModels))
	for i := range subModels {
		subs = append(subs, ToSubscriptionEntity(&subModels[i]))
	}
	return subs, nil
}

func (r *paymentRepository) GetSubscription(userID, creatorID string) (*entity.Subscription, error) {
	var subModel model.SubscriptionModel
	if err := r.db.Where("user_id = ? AND creator_id = ?", userID, creatorID).First(&subModel).Error; err != nil {
		return nil, err
	}
	return ToSubscriptionEntity(&subModel), nil
}

// DeactivateExpired is the hourly sweep behind lazy expiry: active rows
// whose end date has passed are flipped off in one UPDATE.
func (r *paymentRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.SubscriptionModel{}).
		Where("is_active = ? AND end_date < ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *paymentRepository) GetContentInfo(contentID string) (*ContentInfo, error) {
	var info ContentInfo
	err := r.db.Table("contents").
		Select("id, creator_id, is_premium, access_price").
		Where("id = ? AND deleted_at IS NULL", contentID).
		Scan(&info).Error
	if err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &info, nil
}

func (r *paymentRepository) GetCreatorSubPrice(creatorID string) (string, error) {
	var price string
	err := r.db.Table("creator_profiles").
		Select("sub_price::text").
		Where("id = ?", creatorID).
		Scan(&price).Error
	if err != nil {
		return "", err
	}
	if price == "" {
		return "", gorm.ErrRecordNotFound
	}
	return price, nil
}
