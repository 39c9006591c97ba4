package persistent

import (
	"etn-patron/services/content/internal/entity"
	"etn-patron/services/content/internal/model"
)

func ToContentEntity(m *model.ContentModel) *entity.Content {
	if m == nil {
		return nil
	}

	return &entity.Content{
		ID:          m.ID,
		CreatorID:   m.CreatorID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		ContentURL:  m.ContentURL,
		ContentHash: m.ContentHash,
		IsPremium:   m.IsPremium,
		AccessPrice: m.AccessPrice,
		IsEncrypted: m.IsEncrypted,
		ViewsCount:  m.ViewsCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToContentModel(e *entity.Content) *model.ContentModel {
	if e == nil {
		return nil
	}

	return &model.ContentModel{
		ID:          e.ID,
		CreatorID:   e.CreatorID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		ContentURL:  e.ContentURL,
		ContentHash: e.ContentHash,
		IsPremium:   e.IsPremium,
		AccessPrice: e.AccessPrice,
		IsEncrypted: e.IsEncrypted,
		ViewsCount:  e.ViewsCount,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:        m.ID,
		UserID:    m.UserID,
		ContentID: m.ContentID,
		ParentID:  m.ParentID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        e.ID,
		UserID:    e.UserID,
		ContentID: e.ContentID,
		ParentID:  e.ParentID,
		Body:      e.Body,
		CreatedAt: e.CreatedAt,
	}
}
