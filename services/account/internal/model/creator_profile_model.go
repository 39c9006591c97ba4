package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatorProfileModel struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	SubPrice    string         `gorm:"type:numeric(78,0);default:0" json:"sub_price"`
	Category    string         `gorm:"index" json:"category"`
	Verified    bool           `gorm:"default:false" json:"verified"`
	Description string         `json:"description"`
	BannerURL   string         `gorm:"type:varchar(500)" json:"banner_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User UserModel `gorm:"foreignKey:UserID" json:"-"`
}

func (CreatorProfileModel) TableName() string {
	return "creator_profiles"
}

func (p *CreatorProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
