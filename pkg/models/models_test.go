package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		WalletAddress: "0xAbCdEf0123456789ABCDEF0123456789abcdef01",
		Username:      "testuser",
		Email:         "test@example.com",
	}

	// BeforeCreate should set ID if empty and lowercase the wallet
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", user.WalletAddress)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:            existingID,
		WalletAddress: "0xabc",
		Username:      "testuser",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestCreatorProfile_BeforeCreate(t *testing.T) {
	profile := &CreatorProfile{
		UserID:   "user-123",
		SubPrice: "1000000000000000000",
		Category: "music",
	}

	err := profile.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
}

func TestContent_BeforeCreate(t *testing.T) {
	content := &Content{
		CreatorID: "creator-123",
		Title:     "Test Content",
		IsPremium: true,
	}

	err := content.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, content.ID)
}

func TestSubscription_BeforeCreate(t *testing.T) {
	subscription := &Subscription{
		UserID:    "user-123",
		CreatorID: "creator-123",
	}

	err := subscription.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, subscription.ID)
}

func TestTransaction_BeforeCreate(t *testing.T) {
	transaction := &Transaction{
		SenderID: "user-123",
		Type:     TransactionTypePurchase,
		Amount:   "5000000000000000000",
		TxHash:   "0xdeadbeef",
	}

	err := transaction.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, transaction.ID)
}

func TestComment_BeforeCreate(t *testing.T) {
	comment := &Comment{
		UserID:    "user-123",
		ContentID: "content-123",
		Body:      "great track",
	}

	err := comment.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
}

func TestLike_BeforeCreate(t *testing.T) {
	contentID := "content-123"
	like := &Like{
		UserID:    "user-123",
		ContentID: &contentID,
	}

	err := like.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, like.ID)
}

func TestNotification_BeforeCreate(t *testing.T) {
	notification := &Notification{
		UserID:  "user-123",
		Type:    NotificationTypeTip,
		Message: "you received a tip",
	}

	err := notification.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, notification.ID)
}

func TestTransactionType_Constants(t *testing.T) {
	assert.Equal(t, TransactionType("subscription"), TransactionTypeSubscription)
	assert.Equal(t, TransactionType("purchase"), TransactionTypePurchase)
	assert.Equal(t, TransactionType("tip"), TransactionTypeTip)
	assert.Equal(t, TransactionType("creator_registration"), TransactionTypeCreatorRegistration)
}

func TestNotificationType_Constants(t *testing.T) {
	assert.Equal(t, NotificationType("new_subscriber"), NotificationTypeNewSubscriber)
	assert.Equal(t, NotificationType("purchase"), NotificationTypePurchase)
	assert.Equal(t, NotificationType("tip"), NotificationTypeTip)
	assert.Equal(t, NotificationType("comment"), NotificationTypeComment)
	assert.Equal(t, NotificationType("new_content"), NotificationTypeNewContent)
}
