package persistent

import (
	"strings"

	"etn-patron/services/account/internal/entity"
	"etn-patron/services/account/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByWallet(wallet string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error

	CreateCreatorProfile(profile *entity.CreatorProfile) error
	GetCreatorProfile(id string) (*entity.CreatorProfile, error)
	GetCreatorProfileByUserID(userID string) (*entity.CreatorProfile, error)
	UpdateCreatorProfile(profile *entity.CreatorProfile) error
	ListCreatorProfiles(limit, offset int, category string) ([]*entity.CreatorProfile, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByWallet(wallet string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("wallet_address = ?", strings.ToLower(wallet)).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	return r.db.Save(userModel).Error
}

func (r *userRepository) CreateCreatorProfile(profile *entity.CreatorProfile) error {
	profileModel := ToCreatorProfileModel(profile)
	if profileModel.ID == "" {
		profileModel.ID = uuid.New().String()
	}

	// Profile creation and the creator flag flip are one unit
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profileModel).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.UserModel{}).Where("id = ?", profileModel.UserID).
			Update("is_creator", true).Error; err != nil {
			return err
		}
		*profile = *ToCreatorProfileEntity(profileModel)
		return nil
	})
}

func (r *userRepository) GetCreatorProfile(id string) (*entity.CreatorProfile, error) {
	var profileModel model.CreatorProfileModel
	if err := r.db.Preload("User").Where("id = ?", id).First(&profileModel).Error; err != nil {
		return nil, err
	}
	return ToCreatorProfileEntity(&profileModel), nil
}

func (r *userRepository) GetCreatorProfileByUserID(userID string) (*entity.CreatorProfile, error) {
	var profileModel model.CreatorProfileModel
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profileModel).Error; err != nil {
		return nil, err
	}
	return ToCreatorProfileEntity(&profileModel), nil
}

func (r *userRepository) UpdateCreatorProfile(profile *entity.CreatorProfile) error {
	profileModel := ToCreatorProfileModel(profile)
	return r.db.Save(profileModel).Error
}

func (r *userRepository) ListCreatorProfiles(limit, offset int, category string) ([]*entity.CreatorProfile, error) {
	var profileModels []model.CreatorProfileModel
	query := r.db.Preload("User").Order("created_at DESC")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*entity.CreatorProfile, len(profileModels))
	for i := range profileModels {
		profiles[i] = ToCreatorProfileEntity(&profileModels[i])
	}
	return profiles, nil
}
