package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID            string         `gorm:"type:uuid;primary_key" json:"id"`
	WalletAddress string         `gorm:"uniqueIndex;not null" json:"wallet_address"`
	Username      string         `gorm:"uniqueIndex;not null" json:"username"`
	Email         string         `json:"email"`
	DisplayName   string         `json:"display_name"`
	Bio           string         `json:"bio"`
	AvatarURL     string         `gorm:"type:varchar(500)" json:"avatar_url"`
	IsCreator     bool           `gorm:"default:false" json:"is_creator"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.WalletAddress = strings.ToLower(u.WalletAddress)
	return nil
}
