package persistent

import (
	"encoding/json"

	"etn-patron/services/notification/internal/entity"
	"etn-patron/services/notification/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByUser(userID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) (int64, error)
	CountUnread(userID string) (int64, error)

	GetCreatorOwner(creatorID string) (string, error)
	ListActiveSubscriberIDs(creatorID string) ([]string, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func toEntity(m *model.NotificationModel) *entity.Notification {
	n := &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
	if m.Data != "" {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(m.Data), &data); err == nil {
			n.Data = data
		}
	}
	return n
}

func (r *notificationRepository) Create(notification *entity.Notification) error {
	data := "{}"
	if notification.Data != nil {
		if raw, err := json.Marshal(notification.Data); err == nil {
			data = string(raw)
		}
	}

	notificationModel := &model.NotificationModel{
		UserID:  notification.UserID,
		Type:    notification.Type,
		Title:   notification.Title,
		Message: notification.Message,
		Data:    data,
	}
	if err := r.db.Create(notificationModel).Error; err != nil {
		return err
	}

	notification.ID = notificationModel.ID
	notification.CreatedAt = notificationModel.CreatedAt
	return nil
}

func (r *notificationRepository) ListByUser(userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	var total int64
	if err := r.db.Model(&model.NotificationModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var notificationModels []model.NotificationModel
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for i := range notificationModels {
		notifications = append(notifications, toEntity(&notificationModels[i]))
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(id, userID string) error {
	result := r.db.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID string) (int64, error) {
	result := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) GetCreatorOwner(creatorID string) (string, error) {
	var userID string
	err := r.db.Table("creator_profiles").
		Select("user_id").
		Where("id = ?", creatorID).
		Scan(&userID).Error
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", gorm.ErrRecordNotFound
	}
	return userID, nil
}

func (r *notificationRepository) ListActiveSubscriberIDs(creatorID string) ([]string, error) {
	var userIDs []string
	err := r.db.Table("subscriptions").
		Select("user_id").
		Where("creator_id = ? AND is_active = ? AND end_date > NOW()", creatorID, true).
		Scan(&userIDs).Error
	return userIDs, err
}
