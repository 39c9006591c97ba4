package persistent

import (
	"time"

	"etn-patron/services/content/internal/entity"
	"etn-patron/services/content/internal/model"

	"gorm.io/gorm"
)

type ContentRepository interface {
	Create(content *entity.Content) error
	GetByID(id string) (*entity.Content, error)
	Update(content *entity.Content) error
	Delete(id string) error
	List(limit, offset int, category string) ([]*entity.Content, error)
	ListByCreator(creatorID string, limit, offset int) ([]*entity.Content, error)
	IncrementViews(contentID string) error

	GetCreatorOwner(creatorID string) (string, error)
	GetCreatorIDByUserID(userID string) (string, error)
	HasActiveSubscription(userID, creatorID string, now time.Time) (bool, error)
	HasCompletedPurchase(userID, contentID string) (bool, error)

	ToggleContentLike(userID, contentID string) (bool, int64, error)
	ToggleCommentLike(userID, commentID string) (bool, int64, error)
	CountContentLikes(contentID string) (int64, error)
	CountCommentLikes(commentID string) (int64, error)

	CreateComment(comment *entity.Comment) error
	GetComment(id string) (*entity.Comment, error)
	ListComments(contentID string, limit, offset int) ([]*entity.Comment, error)
	DeleteComment(id string) error
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(content *entity.Content) error {
	contentModel := ToContentModel(content)
	if err := r.db.Create(contentModel).Error; err != nil {
		return err
	}
	*content = *ToContentEntity(contentModel)
	return nil
}

func (r *contentRepository) GetByID(id string) (*entity.Content, error) {
	var contentModel model.ContentModel
	if err := r.db.Where("id = ?", id).First(&contentModel).Error; err != nil {
		return nil, err
	}
	return ToContentEntity(&contentModel), nil
}

func (r *contentRepository) Update(content *entity.Content) error {
	return r.db.Save(ToContentModel(content)).Error
}

func (r *contentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ContentModel{}).Error
}

func (r *contentRepository) List(limit, offset int, category string) ([]*entity.Content, error) {
	query := r.db.Model(&model.ContentModel{}).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var contentModels []model.ContentModel
	if err := query.Find(&contentModels).Error; err != nil {
		return nil, err
	}

	contents := make([]*entity.Content, 0, len(contentModels))
	for i := range contentModels {
		contents = append(contents, ToContentEntity(&contentModels[i]))
	}
	return contents, nil
}

func (r *contentRepository) ListByCreator(creatorID string, limit, offset int) ([]*entity.Content, error) {
	query := r.db.Model(&model.ContentModel{}).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var contentModels []model.ContentModel
	if err := query.Find(&contentModels).Error; err != nil {
		return nil, err
	}

	contents := make([]*entity.Content, 0, len(contentModels))
	for i := range contentModels {
		contents = append(contents, ToContentEntity(&contentModels[i]))
	}
	return contents, nil
}

// IncrementViews bumps the counter in a single UPDATE so concurrent
// fetches never lose increments.
func (r *contentRepository) IncrementViews(contentID string) error {
	return r.db.Model(&model.ContentModel{}).
		Where("id = ?", contentID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *contentRepository) GetCreatorOwner(creatorID string) (string, error) {
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

func (r *contentRepository) GetCreatorIDByUserID(userID string) (string, error) {
	var creatorID string
	err := r.db.Table("creator_profiles").
		Select("id").
		Where("user_id = ?", userID).
		Scan(&creatorID).Error
	if err != nil {
		return "", err
	}
	if creatorID == "" {
		return "", gorm.ErrRecordNotFound
	}
	return creatorID, nil
}

func (r *contentRepository) HasActiveSubscription(userID, creatorID string, now time.Time) (bool, error) {
	var count int64
	err := r.db.Table("subscriptions").
		Where("user_id = ? AND creator_id = ? AND is_active = ? AND end_date > ?", userID, creatorID, true, now).
		Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) HasCompletedPurchase(userID, contentID string) (bool, error) {
	var count int64
	err := r.db.Table("transactions").
		Where("sender_id = ? AND content_id = ? AND type = ? AND status = ?", userID, contentID, "purchase", "completed").
		Count(&count).Error
	return count > 0, err
}

// ToggleContentLike flips the like row for (user, content) and returns the
// resulting liked state and derived count. The row flip and the count read
// happen inside one transaction so two racing toggles cannot double-insert
// or report a stale count.
func (r *contentRepository) ToggleContentLike(userID, contentID string) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.LikeModel
		err := tx.Where("user_id = ? AND content_id = ?", userID, contentID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case err == gorm.ErrRecordNotFound:
			like := &model.LikeModel{UserID: userID, ContentID: &contentID}
			if err := tx.Create(like).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		return tx.Model(&model.LikeModel{}).
			Where("content_id = ?", contentID).
			Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *contentRepository) ToggleCommentLike(userID, commentID string) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.LikeModel
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case err == gorm.ErrRecordNotFound:
			like := &model.LikeModel{UserID: userID, CommentID: &commentID}
			if err := tx.Create(like).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		return tx.Model(&model.LikeModel{}).
			Where("comment_id = ?", commentID).
			Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *contentRepository) CountContentLikes(contentID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}

func (r *contentRepository) CountCommentLikes(commentID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *contentRepository) CreateComment(comment *entity.Comment) error {
	commentModel := ToCommentModel(comment)
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *contentRepository) GetComment(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *contentRepository) ListComments(contentID string, limit, offset int) ([]*entity.Comment, error) {
	query := r.db.Model(&model.CommentModel{}).
		Where("content_id = ?", contentID).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var commentModels []model.CommentModel
	if err := query.Find(&commentModels).Error; err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, 0, len(commentModels))
	for i := range commentModels {
		comments = append(comments, ToCommentEntity(&commentModels[i]))
	}
	return comments, nil
}

func (r *contentRepository) DeleteComment(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.CommentModel{}).Error
}
