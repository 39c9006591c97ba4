package usecase

import (
	"fmt"

	"etn-patron/pkg/logger"
	"etn-patron/pkg/queue"
	"etn-patron/services/notification/internal/entity"
	"etn-patron/services/notification/internal/model"
	"etn-patron/services/notification/internal/repo/persistent"
)

type NotificationUseCase interface {
	HandleEvent(event map[string]interface{}) error
	GetNotifications(userID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(notificationID, userID string) error
	MarkAllRead(userID string) (int64, error)
	GetUnreadCount(userID string) (int64, error)
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	logger           *logger.Logger
}

func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// HandleEvent turns a queue event into notification rows. Returning an
// error requeues the event, so lookups that can never succeed are logged
// and swallowed instead.
func (uc *notificationUseCase) HandleEvent(event map[string]interface{}) error {
	eventType, _ := event["type"].(string)

	switch eventType {
	case queue.EventSubscription:
		return uc.notifyCreator(event, model.NotificationTypeNewSubscriber,
			"New subscriber", "Someone subscribed to your content")
	case queue.EventPurchase:
		return uc.notifyCreator(event, model.NotificationTypePurchase,
			"Content purchased", "Someone purchased your premium content")
	case queue.EventTip:
		return uc.notifyCreator(event, model.NotificationTypeTip,
			"Tip received", "Someone sent you a tip")
	case queue.EventComment:
		return uc.notifyCreator(event, model.NotificationTypeComment,
			"New comment", "Someone commented on your content")
	case queue.EventNewContent:
		return uc.notifySubscribers(event)
	default:
		uc.logger.Warn("Ignoring unknown event type: %s", eventType)
		return nil
	}
}

func (uc *notificationUseCase) notifyCreator(event map[string]interface{}, notificationType, title, message string) error {
	creatorID, _ := event["creator_id"].(string)
	if creatorID == "" {
		uc.logger.Warn("Event without creator_id: %v", event)
		return nil
	}

	ownerID, err := uc.notificationRepo.GetCreatorOwner(creatorID)
	if err != nil {
		uc.logger.Warn("No owner for creator %s, dropping event", creatorID)
		return nil
	}

	notification := &entity.Notification{
		UserID:  ownerID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    event,
	}
	if err := uc.notificationRepo.Create(notification); err != nil {
		uc.logger.Error("Failed to create notification: %v", err)
		return err
	}
	return nil
}

func (uc *notificationUseCase) notifySubscribers(event map[string]interface{}) error {
	creatorID, _ := event["creator_id"].(string)
	if creatorID == "" {
		return nil
	}

	subscriberIDs, err := uc.notificationRepo.ListActiveSubscriberIDs(creatorID)
	if err != nil {
		uc.logger.Error("Failed to list subscribers for %s: %v", creatorID, err)
		return err
	}

	title, _ := event["title"].(string)
	message := "A creator you follow published new content"
	if title != "" {
		message = fmt.Sprintf("New content: %s", title)
	}

	for _, userID := range subscriberIDs {
		notification := &entity.Notification{
			UserID:  userID,
			Type:    model.NotificationTypeNewContent,
			Title:   "New content",
			Message: message,
			Data:    event,
		}
		if err := uc.notificationRepo.Create(notification); err != nil {
			uc.logger.Error("Failed to notify subscriber %s: %v", userID, err)
		}
	}
	return nil
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUser(userID, limit, offset)
}

func (uc *notificationUseCase) MarkRead(notificationID, userID string) error {
	return uc.notificationRepo.MarkRead(notificationID, userID)
}

func (uc *notificationUseCase) MarkAllRead(userID string) (int64, error) {
	return uc.notificationRepo.MarkAllRead(userID)
}

func (uc *notificationUseCase) GetUnreadCount(userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(userID)
}
