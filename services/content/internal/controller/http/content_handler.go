package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"etn-patron/pkg/logger"
	"etn-patron/services/content/internal/entity"
	"etn-patron/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContentHandler struct {
	contentUseCase usecase.ContentUseCase
	logger         *logger.Logger
}

func NewContentHandler(contentUseCase usecase.ContentUseCase, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		logger:         logger,
	}
}

type ContentResponse struct {
	Content    *entity.Content `json:"content"`
	Accessible bool            `json:"accessible"`
}

type UpdateContentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	AccessPrice *string `json:"access_price"`
}

type CommentRequest struct {
	Body     string  `json:"body" binding:"required"`
	ParentID *string `json:"parent_id"`
}

type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// CreateContent godoc
// @Summary      Publish a content item
// @Description  Creators publish content as multipart form data. Premium media is pinned to IPFS, public media goes to S3.
// @Tags         content
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Title"
// @Param        description formData string false "Description"
// @Param        category formData string false "Category"
// @Param        is_premium formData bool false "Premium flag"
// @Param        access_price formData string false "Access price in wei (required for premium)"
// @Param        is_encrypted formData bool false "Media is threshold-encrypted"
// @Param        content_hash formData string false "Pre-pinned IPFS CID"
// @Param        media formData file false "Media file"
// @Success      201  {object}  entity.Content
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /content [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	input := usecase.ContentInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		IsPremium:   c.PostForm("is_premium") == "true",
		AccessPrice: c.PostForm("access_price"),
		IsEncrypted: c.PostForm("is_encrypted") == "true",
		ContentHash: c.PostForm("content_hash"),
	}

	var mediaReader io.Reader
	var filename, contentType string
	if file, err := c.FormFile("media"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open media file"})
			return
		}
		defer src.Close()
		mediaReader = src
		filename = file.Filename
		contentType = file.Header.Get("Content-Type")
	}

	content, err := h.contentUseCase.CreateContent(c.GetString("user_id"), input, mediaReader, filename, contentType)
	if err != nil {
		switch err.Error() {
		case "only creators can publish content":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case "title is required", "premium content requires a positive access price":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create content: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, content)
}

// GetContent godoc
// @Summary      Fetch a content item
// @Description  Returns the item with the viewer's access resolved. Increments the view counter on every fetch. Premium URL and CID are redacted when not accessible.
// @Tags         content
// @Produce      json
// @Param        id path string true "Content ID"
// @Success      200  {object}  ContentResponse
// @Failure      404  {object}  map[string]string
// @Router       /content/{id} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	content, accessible, err := h.contentUseCase.GetContent(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ContentResponse{Content: content, Accessible: accessible})
}

// ListContent godoc
// @Summary      List the content feed
// @Tags         content
// @Produce      json
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Param        category query string false "Category filter"
// @Success      200  {array}  entity.Content
// @Router       /content [get]
func (h *ContentHandler) ListContent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contents, err := h.contentUseCase.ListContent(limit, offset, c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, contents)
}

// ListCreatorContent godoc
// @Summary      List a creator's content
// @Tags         content
// @Produce      json
// @Param        creator_id path string true "Creator profile ID"
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {array}  entity.Content
// @Router       /content/creator/{creator_id} [get]
func (h *ContentHandler) ListCreatorContent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	contents, err := h.contentUseCase.ListCreatorContent(c.Param("creator_id"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, contents)
}

// UpdateContent godoc
// @Summary      Update own content item
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Param        request body UpdateContentRequest true "Fields to update"
// @Success      200  {object}  entity.Content
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /content/{id} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.contentUseCase.UpdateContent(c.Param("id"), c.GetString("user_id"), req.Title, req.Description, req.Category, req.AccessPrice)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		case err.Error() == "you can only manage your own content":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case err.Error() == "invalid access price":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, content)
}

// DeleteContent godoc
// @Summary      Delete own content item
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /content/{id} [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	err := h.contentUseCase.DeleteContent(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		case err.Error() == "you can only manage your own content":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

// LikeContent godoc
// @Summary      Toggle a like on a content item
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Success      200  {object}  LikeResponse
// @Failure      404  {object}  map[string]string
// @Router       /content/{id}/like [post]
func (h *ContentHandler) LikeContent(c *gin.Context) {
	liked, count, err := h.contentUseCase.ToggleContentLike(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Liked: liked, LikesCount: count})
}

// LikeComment godoc
// @Summary      Toggle a like on a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  LikeResponse
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id}/like [post]
func (h *ContentHandler) LikeComment(c *gin.Context) {
	liked, count, err := h.contentUseCase.ToggleCommentLike(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, LikeResponse{Liked: liked, LikesCount: count})
}

// AddComment godoc
// @Summary      Comment on a content item
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Param        request body CommentRequest true "Comment body, optional parent for replies"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /content/{id}/comments [post]
func (h *ContentHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.contentUseCase.AddComment(c.GetString("user_id"), c.Param("id"), req.ParentID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		case err.Error() == "parent comment not found", err.Error() == "parent comment belongs to another content item":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List comments on a content item
// @Tags         comments
// @Produce      json
// @Param        id path string true "Content ID"
// @Param        limit query int false "Page size" default(50)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {array}  entity.Comment
// @Router       /content/{id}/comments [get]
func (h *ContentHandler) ListComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	comments, err := h.contentUseCase.ListComments(c.Param("id"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary      Delete own comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *ContentHandler) DeleteComment(c *gin.Context) {
	err := h.contentUseCase.DeleteComment(c.Param("id"), c.GetString("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		case err.Error() == "you can only delete your own comments":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
