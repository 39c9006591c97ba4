package entity

import "time"

type User struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatar_url"`
	IsCreator     bool      `json:"is_creator"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreatorProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	SubPrice    string    `json:"sub_price"`
	Category    string    `json:"category"`
	Verified    bool      `json:"verified"`
	Description string    `json:"description"`
	BannerURL   string    `json:"banner_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `json:"user,omitempty"`
}
