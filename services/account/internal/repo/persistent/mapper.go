package persistent

import (
	"etn-patron/services/account/internal/entity"
	"etn-patron/services/account/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		Username:      m.Username,
		Email:         m.Email,
		DisplayName:   m.DisplayName,
		Bio:           m.Bio,
		AvatarURL:     m.AvatarURL,
		IsCreator:     m.IsCreator,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:            e.ID,
		WalletAddress: e.WalletAddress,
		Username:      e.Username,
		Email:         e.Email,
		DisplayName:   e.DisplayName,
		Bio:           e.Bio,
		AvatarURL:     e.AvatarURL,
		IsCreator:     e.IsCreator,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToCreatorProfileEntity(m *model.CreatorProfileModel) *entity.CreatorProfile {
	if m == nil {
		return nil
	}

	profile := &entity.CreatorProfile{
		ID:          m.ID,
		UserID:      m.UserID,
		SubPrice:    m.SubPrice,
		Category:    m.Category,
		Verified:    m.Verified,
		Description: m.Description,
		BannerURL:   m.BannerURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.User.ID != "" {
		profile.User = ToUserEntity(&m.User)
	}

	return profile
}

func ToCreatorProfileModel(e *entity.CreatorProfile) *model.CreatorProfileModel {
	if e == nil {
		return nil
	}

	return &model.CreatorProfileModel{
		ID:          e.ID,
		UserID:      e.UserID,
		SubPrice:    e.SubPrice,
		Category:    e.Category,
		Verified:    e.Verified,
		Description: e.Description,
		BannerURL:   e.BannerURL,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
