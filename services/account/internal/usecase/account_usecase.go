package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"etn-patron/pkg/chain"
	"etn-patron/pkg/jwt"
	"etn-patron/pkg/logger"
	"etn-patron/pkg/s3"
	"etn-patron/services/account/internal/entity"
	"etn-patron/services/account/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const nonceTTL = 5 * time.Minute

type UserInput struct {
	WalletAddress string
	Username      string
	Email         string
	DisplayName   string
	Bio           string
}

type CreatorInput struct {
	SubPrice    string
	Category    string
	Description string
	BannerURL   string
}

type AccountUseCase interface {
	IssueNonce(wallet string) (string, error)
	Login(wallet, signature string) (*entity.User, string, error)
	UpsertUser(input UserInput) (*entity.User, bool, error)
	GetUser(userID string) (*entity.User, error)
	GetUserByWallet(wallet string) (*entity.User, error)
	UpdateUser(userID, requesterID string, displayName, bio, email *string) (*entity.User, error)
	UploadAvatar(userID string, fileReader io.Reader, filename, contentType string) (*entity.User, error)

	RegisterCreator(userID string, input CreatorInput) (*entity.CreatorProfile, error)
	GetCreator(profileID string) (*entity.CreatorProfile, error)
	GetCreatorByUserID(userID string) (*entity.CreatorProfile, error)
	UpdateCreator(profileID, requesterID string, input CreatorInput) (*entity.CreatorProfile, error)
	ListCreators(limit, offset int, category string) ([]*entity.CreatorProfile, error)
}

type accountUseCase struct {
	userRepo    persistent.UserRepository
	jwtService  *jwt.Service
	s3Client    *s3.Client
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewAccountUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	s3Client *s3.Client,
	redisClient *redis.Client,
	logger *logger.Logger,
) AccountUseCase {
	return &accountUseCase{
		userRepo:    userRepo,
		jwtService:  jwtService,
		s3Client:    s3Client,
		redisClient: redisClient,
		logger:      logger,
	}
}

func nonceKey(wallet string) string {
	return fmt.Sprintf("auth:nonce:%s", strings.ToLower(wallet))
}

func loginMessage(wallet, nonce string) string {
	return fmt.Sprintf("Sign in to ETN Patron\nWallet: %s\nNonce: %s", strings.ToLower(wallet), nonce)
}

func (uc *accountUseCase) IssueNonce(wallet string) (string, error) {
	if wallet == "" {
		return "", fmt.Errorf("wallet is required")
	}

	nonce := uuid.New().String()
	ctx := context.Background()
	if err := uc.redisClient.Set(ctx, nonceKey(wallet), nonce, nonceTTL).Err(); err != nil {
		uc.logger.Error("Failed to store nonce: %v", err)
		return "", fmt.Errorf("failed to issue nonce")
	}

	return loginMessage(wallet, nonce), nil
}

func (uc *accountUseCase) Login(wallet, signature string) (*entity.User, string, error) {
	ctx := context.Background()
	nonce, err := uc.redisClient.Get(ctx, nonceKey(wallet)).Result()
	if err != nil {
		return nil, "", fmt.Errorf("no login nonce for this wallet, request one first")
	}

	if err := chain.VerifyPersonalSign(loginMessage(wallet, nonce), signature, wallet); err != nil {
		return nil, "", fmt.Errorf("invalid signature")
	}

	// A nonce is single use
	uc.redisClient.Del(ctx, nonceKey(wallet))

	user, err := uc.userRepo.GetByWallet(wallet)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			uc.logger.Error("Failed to look up user: %v", err)
			return nil, "", fmt.Errorf("failed to log in")
		}

		// First login for this wallet creates a minimal account
		user = &entity.User{
			WalletAddress: strings.ToLower(wallet),
			Username:      defaultUsername(wallet),
		}
		if err := uc.userRepo.Create(user); err != nil {
			uc.logger.Error("Failed to create user: %v", err)
			return nil, "", fmt.Errorf("failed to create user")
		}
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.WalletAddress)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	return user, token, nil
}

// defaultUsername derives a readable handle from a wallet address.
func defaultUsername(wallet string) string {
	w := strings.ToLower(strings.TrimPrefix(wallet, "0x"))
	if len(w) > 8 {
		w = w[:8]
	}
	return "user_" + w
}

/// UpsertUser creates the user for a wallet, or updates the existing one:
// one wallet maps to exactly one user record.
func (uc *accountUseCase) UpsertUser(input UserInput) (*entity.User, bool, error) {
	existing, err := uc.userRepo.GetByWallet(input.WalletAddress)
	if err != nil && err != gorm.ErrRecordNotFound {
		uc.logger.Error("Failed to look up user: %v", err)
		return nil, false, fmt.Errorf("failed to look up user")
	}

	if existing != nil {
		if input.Username != "" && input.Username != existing.Username {
			if taken, err := uc.usernameTaken(input.Username); err != nil {
				return nil, false, err
			} else if taken {
				return nil, false, fmt.Errorf("username already taken")
			}
			existing.Username = input.Username
		}
		if input.Email != "" {
			existing.Email = input.Email
		}
		if input.DisplayName != "" {
			existing.DisplayName = input.DisplayName
		}
		if input.Bio != "" {
			existing.Bio = input.Bio
		}

		if err := uc.userRepo.Update(existing); err != nil {
			uc.logger.Error("Failed to update user: %v", err)
			return nil, false, fmt.Errorf("failed to update user")
		}
		return existing, false, nil
	}

	if input.Username == "" {
		input.Username = defaultUsername(input.WalletAddress)
	}
	if taken, err := uc.usernameTaken(input.Username); err != nil {
		return nil, false, err
	} else if taken {
		return nil, false, fmt.Errorf("username already taken")
	}

	user := &entity.User{
		WalletAddress: strings.ToLower(input.WalletAddress),
		Username:      input.Username,
		Email:         input.Email,
		DisplayName:   input.DisplayName,
		Bio:           input.Bio,
	}
	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, false, fmt.Errorf("failed to create user")
	}

	return user, true, nil
}

func (uc *accountUseCase) usernameTaken(username string) (bool, error) {
	_, err := uc.userRepo.GetByUsername(username)
	if err == nil {
		return true, nil
	}
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	uc.logger.Error("Failed to check username: %v", err)
	return false, fmt.Errorf("failed to check username")
}

func (uc *accountUseCase) GetUser(userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(userID)
}

func (uc *accountUseCase) GetUserByWallet(wallet string) (*entity.User, error) {
	return uc.userRepo.GetByWallet(wallet)
}

func (uc *accountUseCase) UpdateUser(userID, requesterID string, displayName, bio, email *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if user.ID != requesterID {
		return nil, fmt.Errorf("you can only update your own profile")
	}

	if displayName != nil {
		user.DisplayName = *displayName
	}
	if bio != nil {
		user.Bio = *bio
	}
	if email != nil {
		user.Email = *email
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	return user, nil
}

func (uc *accountUseCase) UploadAvatar(userID string, fileReader io.Reader, filename, contentType string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	fileKey := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), fileExtension(filename))
	if contentType == "" {
		contentType = "image/jpeg"
	}

	avatarURL, err := uc.s3Client.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user.AvatarURL = avatarURL
	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	return user, nil
}

func (uc *accountUseCase) RegisterCreator(userID string, input CreatorInput) (*entity.CreatorProfile, error) {
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetCreatorProfileByUserID(userID); err == nil {
		return nil, fmt.Errorf("creator profile already exists")
	} else if err != gorm.ErrRecordNotFound {
		uc.logger.Error("Failed to check creator profile: %v", err)
		return nil, fmt.Errorf("failed to register creator")
	}

	profile := &entity.CreatorProfile{
		UserID:      userID,
		SubPrice:    input.SubPrice,
		Category:    input.Category,
		Description: input.Description,
		BannerURL:   input.BannerURL,
	}
	if profile.SubPrice == "" {
		profile.SubPrice = "0"
	}

	if err := uc.userRepo.CreateCreatorProfile(profile); err != nil {
		uc.logger.Error("Failed to create creator profile: %v", err)
		return nil, fmt.Errorf("failed to register creator")
	}

	return profile, nil
}

func (uc *accountUseCase) GetCreator(profileID string) (*entity.CreatorProfile, error) {
	return uc.userRepo.GetCreatorProfile(profileID)
}

func (uc *accountUseCase) GetCreatorByUserID(userID string) (*entity.CreatorProfile, error) {
	return uc.userRepo.GetCreatorProfileByUserID(userID)
}

func (uc *accountUseCase) UpdateCreator(profileID, requesterID string, input CreatorInput) (*entity.CreatorProfile, error) {
	profile, err := uc.userRepo.GetCreatorProfile(profileID)
	if err != nil {
		return nil, err
	}

	if profile.UserID != requesterID {
		return nil, fmt.Errorf("you can only update your own creator profile")
	}

	if input.SubPrice != "" {
		profile.SubPrice = input.SubPrice
	}
	if input.Category != "" {
		profile.Category = input.Category
	}
	if input.Description != "" {
		profile.Description = input.Description
	}
	if input.BannerURL != "" {
		profile.BannerURL = input.BannerURL
	}

	if err := uc.userRepo.UpdateCreatorProfile(profile); err != nil {
		uc.logger.Error("Failed to update creator profile: %v", err)
		return nil, fmt.Errorf("failed to update creator profile")
	}

	return profile, nil
}

func (uc *accountUseCase) ListCreators(limit, offset int, category string) ([]*entity.CreatorProfile, error) {
	return uc.userRepo.ListCreatorProfiles(limit, offset, category)
}

func fileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
