package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"etn-patron/pkg/logger"
	"etn-patron/services/account/internal/entity"
	"etn-patron/services/account/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockAccountUseCase is a mock implementation of AccountUseCase
type MockAccountUseCase struct {
	mock.Mock
}

func (m *MockAccountUseCase) IssueNonce(wallet string) (string, error) {
	args := m.Called(wallet)
	return args.String(0), args.Error(1)
}

func (m *MockAccountUseCase) Login(wallet, signature string) (*entity.User, string, error) {
	args := m.Called(wallet, signature)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAccountUseCase) UpsertUser(input usecase.UserInput) (*entity.User, bool, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entity.User), args.Bool(1), args.Error(2)
}

func (m *MockAccountUseCase) GetUser(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAccountUseCase) GetUserByWallet(wallet string) (*entity.User, error) {
	args := m.Called(wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAccountUseCase) UpdateUser(userID, requesterID string, displayName, bio, email *string) (*entity.User, error) {
	args := m.Called(userID, requesterID, displayName, bio, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAccountUseCase) UploadAvatar(userID string, fileReader io.Reader, filename, contentType string) (*entity.User, error) {
	args := m.Called(userID, fileReader, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAccountUseCase) RegisterCreator(userID string, input usecase.CreatorInput) (*entity.CreatorProfile, error) {
	args := m.Called(userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockAccountUseCase) GetCreator(profileID string) (*entity.CreatorProfile, error) {
	args := m.Called(profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockAccountUseCase) GetCreatorByUserID(userID string) (*entity.CreatorProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockAccountUseCase) UpdateCreator(profileID, requesterID string, input usecase.CreatorInput) (*entity.CreatorProfile, error) {
	args := m.Called(profileID, requesterID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockAccountUseCase) ListCreators(limit, offset int, category string) ([]*entity.CreatorProfile, error) {
	args := m.Called(limit, offset, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CreatorProfile), args.Error(1)
}

var _ usecase.AccountUseCase = (*MockAccountUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetNonce(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/auth/nonce", handler.GetNonce)

	wallet := "0xabc0000000000000000000000000000000000001"
	mockUseCase.On("IssueNonce", wallet).Return("Sign in to ETN Patron\nWallet: "+wallet+"\nNonce: nonce-1", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/nonce?wallet="+wallet, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Contains(t, resp["message"], "Nonce: nonce-1")
	mockUseCase.AssertExpectations(t)
}

func TestGetNonce_MissingWallet(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/auth/nonce", handler.GetNonce)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/nonce", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "IssueNonce", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/auth/login", handler.Login)

	wallet := "0xabc0000000000000000000000000000000000001"
	user := &entity.User{ID: "user-1", WalletAddress: wallet, Username: "alice"}
	mockUseCase.On("Login", wallet, "0xsig").Return(user, "token-1", nil)

	body, _ := json.Marshal(LoginRequest{Wallet: wallet, Signature: "0xsig"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "token-1", resp.Token)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestLogin_InvalidSignature(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/auth/login", handler.Login)

	wallet := "0xabc0000000000000000000000000000000000001"
	mockUseCase.On("Login", wallet, "0xbad").Return(nil, "", assertableError("invalid signature"))

	body, _ := json.Marshal(LoginRequest{Wallet: wallet, Signature: "0xbad"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpsertUser_Created(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/users", handler.UpsertUser)

	wallet := "0xabc0000000000000000000000000000000000002"
	user := &entity.User{ID: "user-2", WalletAddress: wallet, Username: "bob"}
	mockUseCase.On("UpsertUser", usecase.UserInput{WalletAddress: wallet, Username: "bob"}).Return(user, true, nil)

	body, _ := json.Marshal(UpsertUserRequest{WalletAddress: wallet, Username: "bob"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpsertUser_Conflict(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/users", handler.UpsertUser)

	wallet := "0xabc0000000000000000000000000000000000002"
	mockUseCase.On("UpsertUser", mock.Anything).Return(nil, false, assertableError("username already taken"))

	body, _ := json.Marshal(UpsertUserRequest{WalletAddress: wallet, Username: "taken"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users/:id", handler.GetUser)

	mockUseCase.On("GetUser", "missing").Return(nil, gorm.ErrRecordNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_Forbidden(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/users/:id", func(c *gin.Context) {
		c.Set("user_id", "user-2")
		handler.UpdateUser(c)
	})

	mockUseCase.On("UpdateUser", "user-1", "user-2", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assertableError("you can only update your own profile"))

	body, _ := json.Marshal(UpdateUserRequest{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/users/user-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterCreator_Success(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/creators", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.RegisterCreator(c)
	})

	profile := &entity.CreatorProfile{ID: "cp-1", UserID: "user-1", SubPrice: "1000000000000000000"}
	mockUseCase.On("RegisterCreator", "user-1", usecase.CreatorInput{SubPrice: "1000000000000000000", Category: "music"}).
		Return(profile, nil)

	body, _ := json.Marshal(CreatorRequest{SubPrice: "1000000000000000000", Category: "music"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/creators", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.CreatorProfile
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "cp-1", resp.ID)
}

func TestListCreators(t *testing.T) {
	mockUseCase := new(MockAccountUseCase)
	handler := NewAccountHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/creators", handler.ListCreators)

	profiles := []*entity.CreatorProfile{
		{ID: "cp-1", UserID: "user-1"},
		{ID: "cp-2", UserID: "user-2"},
	}
	mockUseCase.On("ListCreators", 20, 0, "").Return(profiles, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/creators", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*entity.CreatorProfile
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
