package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"etn-patron/pkg/logger"
	"etn-patron/services/content/internal/entity"
	"etn-patron/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockContentUseCase is a mock implementation of ContentUseCase
type MockContentUseCase struct {
	mock.Mock
}

func (m *MockContentUseCase) CreateContent(userID string, input usecase.ContentInput, mediaFile io.Reader, filename, contentType string) (*entity.Content, error) {
	args := m.Called(userID, input, mediaFile, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Content), args.Error(1)
}

func (m *MockContentUseCase) GetContent(contentID, viewerID string) (*entity.Content, bool, error) {
	args := m.Called(contentID, viewerID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entity.Content), args.Bool(1), args.Error(2)
}

func (m *MockContentUseCase) ListContent(limit, offset int, category string) ([]*entity.Content, error) {
	args := m.Called(limit, offset, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Content), args.Error(1)
}

func (m *MockContentUseCase) ListCreatorContent(creatorID string, limit, offset int) ([]*entity.Content, error) {
	args := m.Called(creatorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Content), args.Error(1)
}

func (m *MockContentUseCase) UpdateContent(contentID, userID string, title, description, category, accessPrice *string) (*entity.Content, error) {
	args := m.Called(contentID, userID, title, description, category, accessPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Content), args.Error(1)
}

func (m *MockContentUseCase) DeleteContent(contentID, userID string) error {
	args := m.Called(contentID, userID)
	return args.Error(0)
}

func (m *MockContentUseCase) ToggleContentLike(userID, contentID string) (bool, int64, error) {
	args := m.Called(userID, contentID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockContentUseCase) ToggleCommentLike(userID, commentID string) (bool, int64, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockContentUseCase) AddComment(userID, contentID string, parentID *string, body string) (*entity.Comment, error) {
	args := m.Called(userID, contentID, parentID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockContentUseCase) ListComments(contentID string, limit, offset int) ([]*entity.Comment, error) {
	args := m.Called(contentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockContentUseCase) DeleteComment(commentID, userID string) error {
	args := m.Called(commentID, userID)
	return args.Error(0)
}

var _ usecase.ContentUseCase = (*MockContentUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetContent_AnonymousViewer(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/content/:id", handler.GetContent)

	content := &entity.Content{ID: "content-1", Title: "Premium drop", IsPremium: true}
	mockUseCase.On("GetContent", "content-1", "").Return(content, false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/content/content-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ContentResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.False(t, resp.Accessible)
	assert.Equal(t, "content-1", resp.Content.ID)
	mockUseCase.AssertExpectations(t)
}

func TestGetContent_NotFound(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/content/:id", handler.GetContent)

	mockUseCase.On("GetContent", "missing", "").Return(nil, false, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/content/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeContent(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/content/:id/like", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.LikeContent(c)
	})

	mockUseCase.On("ToggleContentLike", "user-1", "content-1").Return(true, int64(7), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/content/content-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LikeResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(7), resp.LikesCount)
}

func TestUpdateContent_Forbidden(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/content/:id", func(c *gin.Context) {
		c.Set("user_id", "intruder")
		handler.UpdateContent(c)
	})

	mockUseCase.On("UpdateContent", "content-1", "intruder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, handlerError("you can only manage your own content"))

	body, _ := json.Marshal(UpdateContentRequest{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/content/content-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddComment(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/content/:id/comments", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.AddComment(c)
	})

	comment := &entity.Comment{ID: "comment-1", UserID: "user-1", ContentID: "content-1", Body: "nice"}
	mockUseCase.On("AddComment", "user-1", "content-1", (*string)(nil), "nice").Return(comment, nil)

	body, _ := json.Marshal(CommentRequest{Body: "nice"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/content/content-1/comments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListContent_DefaultPaging(t *testing.T) {
	mockUseCase := new(MockContentUseCase)
	handler := NewContentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/content", handler.ListContent)

	mockUseCase.On("ListContent", 20, 0, "music").Return([]*entity.Content{{ID: "content-1"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/content?category=music", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

type handlerError string

func (e handlerError) Error() string { return string(e) }
