package usecase

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"etn-patron/pkg/logger"
	"etn-patron/pkg/pinning"
	"etn-patron/pkg/queue"
	"etn-patron/pkg/s3"
	"etn-patron/services/content/internal/entity"
	"etn-patron/services/content/internal/repo/persistent"

	"github.com/google/uuid"
)

type ContentInput struct {
	Title       string
	Description string
	Category    string
	IsPremium   bool
	AccessPrice string
	IsEncrypted bool
	ContentHash string
}

type ContentUseCase interface {
	CreateContent(userID string, input ContentInput, mediaFile io.Reader, filename, contentType string) (*entity.Content, error)
	GetContent(contentID, viewerID string) (*entity.Content, bool, error)
	ListContent(limit, offset int, category string) ([]*entity.Content, error)
	ListCreatorContent(creatorID string, limit, offset int) ([]*entity.Content, error)
	UpdateContent(contentID, userID string, title, description, category, accessPrice *string) (*entity.Content, error)
	DeleteContent(contentID, userID string) error

	ToggleContentLike(userID, contentID string) (bool, int64, error)
	ToggleCommentLike(userID, commentID string) (bool, int64, error)

	AddComment(userID, contentID string, parentID *string, body string) (*entity.Comment, error)
	ListComments(contentID string, limit, offset int) ([]*entity.Comment, error)
	DeleteComment(commentID, userID string) error
}

type contentUseCase struct {
	contentRepo persistent.ContentRepository
	s3Client    *s3.Client
	pinClient   *pinning.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewContentUseCase(
	contentRepo persistent.ContentRepository,
	s3Client *s3.Client,
	pinClient *pinning.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) ContentUseCase {
	return &contentUseCase{
		contentRepo: contentRepo,
		s3Client:    s3Client,
		pinClient:   pinClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *contentUseCase) CreateContent(userID string, input ContentInput, mediaFile io.Reader, filename, contentType string) (*entity.Content, error) {
	creatorID, err := uc.contentRepo.GetCreatorIDByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("only creators can publish content")
	}

	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.IsPremium {
		price, ok := new(big.Int).SetString(input.AccessPrice, 10)
		if !ok || price.Sign() <= 0 {
			return nil, fmt.Errorf("premium content requires a positive access price")
		}
	}

	content := &entity.Content{
		CreatorID:   creatorID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		IsPremium:   input.IsPremium,
		AccessPrice: input.AccessPrice,
		IsEncrypted: input.IsEncrypted,
		ContentHash: input.ContentHash,
	}
	if content.AccessPrice == "" {
		content.AccessPrice = "0"
	}

	if mediaFile != nil {
		if input.IsPremium {
			// Premium media is pinned to IPFS. The gateway URL is only
			// revealed to entitled viewers.
			cid, err := uc.pinClient.PinFile(filename, mediaFile)
			if err != nil {
				uc.logger.Error("Failed to pin media: %v", err)
				return nil, fmt.Errorf("failed to pin media: %w", err)
			}
			content.ContentHash = cid
			content.ContentURL = uc.pinClient.GatewayURL(cid)
		} else {
			fileKey := fmt.Sprintf("content/%s/%s%s", creatorID, uuid.New().String(), fileExtension(filename))
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			url, err := uc.s3Client.UploadFile(fileKey, mediaFile, contentType)
			if err != nil {
				uc.logger.Error("Failed to upload media: %v", err)
				return nil, fmt.Errorf("failed to upload media: %w", err)
			}
			content.ContentURL = url
		}
	}

	if err := uc.contentRepo.Create(content); err != nil {
		uc.logger.Error("Failed to create content: %v", err)
		return nil, fmt.Errorf("failed to create content")
	}

	uc.publishEvent(map[string]interface{}{
		"type":       queue.EventNewContent,
		"creator_id": creatorID,
		"content_id": content.ID,
		"title":      content.Title,
	})

	return content, nil
}

// GetContent returns the item with the viewer's entitlement resolved.
// The view counter is bumped on every fetch, entitled or not. Premium
// URL and CID are cleared for viewers without access.
func (uc *contentUseCase) GetContent(contentID, viewerID string) (*entity.Content, bool, error) {
	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return nil, false, err
	}

	if err := uc.contentRepo.IncrementViews(contentID); err != nil {
		uc.logger.Error("Failed to increment views for %s: %v", contentID, err)
	} else {
		content.ViewsCount++
	}

	if count, err := uc.contentRepo.CountContentLikes(contentID); err == nil {
		content.LikesCount = count
	}

	accessible, err := uc.isAccessible(content, viewerID)
	if err != nil {
		uc.logger.Error("Failed to evaluate entitlement for %s: %v", contentID, err)
		return nil, false, fmt.Errorf("failed to evaluate access")
	}

	if !accessible {
		content.ContentURL = ""
		content.ContentHash = ""
	}

	return content, accessible, nil
}

func (uc *contentUseCase) isAccessible(content *entity.Content, viewerID string) (bool, error) {
	if !content.IsPremium {
		return true, nil
	}
	if viewerID == "" {
		return false, nil
	}

	if ownerID, err := uc.contentRepo.GetCreatorOwner(content.CreatorID); err == nil && ownerID == viewerID {
		return true, nil
	}

	subscribed, err := uc.contentRepo.HasActiveSubscription(viewerID, content.CreatorID, time.Now())
	if err != nil {
		return false, err
	}
	if subscribed {
		return true, nil
	}

	return uc.contentRepo.HasCompletedPurchase(viewerID, content.ID)
}

func (uc *contentUseCase) ListContent(limit, offset int, category string) ([]*entity.Content, error) {
	contents, err := uc.contentRepo.List(limit, offset, category)
	if err != nil {
		return nil, err
	}
	redactPremium(contents)
	return contents, nil
}

func (uc *contentUseCase) ListCreatorContent(creatorID string, limit, offset int) ([]*entity.Content, error) {
	contents, err := uc.contentRepo.ListByCreator(creatorID, limit, offset)
	if err != nil {
		return nil, err
	}
	redactPremium(contents)
	return contents, nil
}

// Listings never carry premium media locations; entitlement is only
// evaluated on single-item fetches.
func redactPremium(contents []*entity.Content) {
	for _, c := range contents {
		if c.IsPremium {
			c.ContentURL = ""
			c.ContentHash = ""
		}
	}
}

func (uc *contentUseCase) UpdateContent(contentID, userID string, title, description, category, accessPrice *string) (*entity.Content, error) {
	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return nil, err
	}

	if err := uc.requireOwner(content, userID); err != nil {
		return nil, err
	}

	if title != nil {
		content.Title = *title
	}
	if description != nil {
		content.Description = *description
	}
	if category != nil {
		content.Category = *category
	}
	if accessPrice != nil {
		price, ok := new(big.Int).SetString(*accessPrice, 10)
		if !ok || price.Sign() < 0 {
			return nil, fmt.Errorf("invalid access price")
		}
		content.AccessPrice = *accessPrice
	}

	if err := uc.contentRepo.Update(content); err != nil {
		uc.logger.Error("Failed to update content: %v", err)
		return nil, fmt.Errorf("failed to update content")
	}

	return content, nil
}

func (uc *contentUseCase) DeleteContent(contentID, userID string) error {
	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return err
	}

	if err := uc.requireOwner(content, userID); err != nil {
		return err
	}

	return uc.contentRepo.Delete(contentID)
}

func (uc *contentUseCase) requireOwner(content *entity.Content, userID string) error {
	ownerID, err := uc.contentRepo.GetCreatorOwner(content.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to resolve content owner")
	}
	if ownerID != userID {
		return fmt.Errorf("you can only manage your own content")
	}
	return nil
}

func (uc *contentUseCase) ToggleContentLike(userID, contentID string) (bool, int64, error) {
	if _, err := uc.contentRepo.GetByID(contentID); err != nil {
		return false, 0, err
	}
	return uc.contentRepo.ToggleContentLike(userID, contentID)
}

func (uc *contentUseCase) ToggleCommentLike(userID, commentID string) (bool, int64, error) {
	if _, err := uc.contentRepo.GetComment(commentID); err != nil {
		return false, 0, err
	}
	return uc.contentRepo.ToggleCommentLike(userID, commentID)
}

func (uc *contentUseCase) AddComment(userID, contentID string, parentID *string, body string) (*entity.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("comment body is required")
	}

	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := uc.contentRepo.GetComment(*parentID)
		if err != nil {
			return nil, fmt.Errorf("parent comment not found")
		}
		if parent.ContentID != contentID {
			return nil, fmt.Errorf("parent comment belongs to another content item")
		}
	}

	comment := &entity.Comment{
		UserID:    userID,
		ContentID: contentID,
		ParentID:  parentID,
		Body:      body,
	}
	if err := uc.contentRepo.CreateComment(comment); err != nil {
		uc.logger.Error("Failed to create comment: %v", err)
		return nil, fmt.Errorf("failed to create comment")
	}

	uc.publishEvent(map[string]interface{}{
		"type":       queue.EventComment,
		"creator_id": content.CreatorID,
		"content_id": contentID,
		"comment_id": comment.ID,
		"user_id":    userID,
	})

	return comment, nil
}

func (uc *contentUseCase) ListComments(contentID string, limit, offset int) ([]*entity.Comment, error) {
	comments, err := uc.contentRepo.ListComments(contentID, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, comment := range comments {
		if count, err := uc.contentRepo.CountCommentLikes(comment.ID); err == nil {
			comment.LikesCount = count
		}
	}
	return comments, nil
}

func (uc *contentUseCase) DeleteComment(commentID, userID string) error {
	comment, err := uc.contentRepo.GetComment(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return fmt.Errorf("you can only delete your own comments")
	}

	return uc.contentRepo.DeleteComment(commentID)
}

func (uc *contentUseCase) publishEvent(event map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	if err := uc.queueClient.PublishEvent(event); err != nil {
		uc.logger.Error("Failed to publish event: %v", err)
	}
}

func fileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
