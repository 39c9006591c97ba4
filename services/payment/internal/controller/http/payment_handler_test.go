package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"etn-patron/pkg/logger"
	"etn-patron/services/payment/internal/entity"
	"etn-patron/services/payment/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPaymentUseCase is a mock implementation of PaymentUseCase
type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) RecordPayment(ctx context.Context, senderID, senderWallet string, input usecase.PaymentInput) (*entity.Transaction, error) {
	args := m.Called(ctx, senderID, senderWallet, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockPaymentUseCase) ListUserTransactions(userID, requesterID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(userID, requesterID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockPaymentUseCase) GetCreatorEarnings(creatorID string, limit, offset int) (string, []*entity.Transaction, error) {
	args := m.Called(creatorID, limit, offset)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]*entity.Transaction), args.Error(2)
}

func (m *MockPaymentUseCase) ListUserSubscriptions(userID, requesterID string, activeOnly bool) ([]*entity.Subscription, error) {
	args := m.Called(userID, requesterID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscription), args.Error(1)
}

func (m *MockPaymentUseCase) GetSubscriptionStatus(userID, creatorID string) (*entity.Subscription, bool, error) {
	args := m.Called(userID, creatorID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.Subscription), args.Bool(1), args.Error(2)
}

func (m *MockPaymentUseCase) SweepExpiredSubscriptions() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

var _ usecase.PaymentUseCase = (*MockPaymentUseCase)(nil)

func setupTestRouter(userID, wallet string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("wallet", wallet)
		c.Next()
	})
	return r
}

type assertableError string

func (e assertableError) Error() string { return string(e) }

func TestRecordPayment_Success(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	input := usecase.PaymentInput{
		TxHash: "0xabc",
		Type:   "purchase",
		Amount: "1000000000000000000",
	}
	txn := &entity.Transaction{ID: "txn-1", SenderID: "user-1", TxHash: "0xabc", Amount: input.Amount, Status: "completed"}
	mockUseCase.On("RecordPayment", mock.Anything, "user-1", "0xwallet", input).Return(txn, nil)

	router := setupTestRouter("user-1", "0xwallet")
	router.POST("/payments", handler.RecordPayment)

	body, _ := json.Marshal(PaymentRequest{TxHash: "0xabc", Type: "purchase", Amount: "1000000000000000000"})
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestRecordPayment_VerificationFailure(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	mockUseCase.On("RecordPayment", mock.Anything, "user-1", "0xwallet", mock.Anything).
		Return(nil, assertableError("payment verification failed: transaction not found"))

	router := setupTestRouter("user-1", "0xwallet")
	router.POST("/payments", handler.RecordPayment)

	body, _ := json.Marshal(PaymentRequest{TxHash: "0xbad", Type: "purchase", Amount: "100"})
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestRecordPayment_DuplicateHash(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	mockUseCase.On("RecordPayment", mock.Anything, "user-1", "0xwallet", mock.Anything).
		Return(nil, assertableError("transaction hash already recorded"))

	router := setupTestRouter("user-1", "0xwallet")
	router.POST("/payments", handler.RecordPayment)

	body, _ := json.Marshal(PaymentRequest{TxHash: "0xdup", Type: "tip", CreatorID: "creator-1", Amount: "100"})
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRecordPayment_MissingFields(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	router := setupTestRouter("user-1", "0xwallet")
	router.POST("/payments", handler.RecordPayment)

	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader([]byte(`{"tx_hash": "0xabc"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "RecordPayment")
}

func TestListUserTransactions_Forbidden(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	mockUseCase.On("ListUserTransactions", "user-2", "user-1", 20, 0).
		Return(nil, assertableError("you can only view your own transactions"))

	router := setupTestRouter("user-1", "0xwallet")
	router.GET("/payments/user/:user_id", handler.ListUserTransactions)

	req := httptest.NewRequest(http.MethodGet, "/payments/user/user-2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetCreatorEarnings(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	txns := []*entity.Transaction{{ID: "txn-1", Amount: "500"}}
	mockUseCase.On("GetCreatorEarnings", "creator-1", 20, 0).Return("500", txns, nil)

	router := setupTestRouter("user-1", "0xwallet")
	router.GET("/payments/creator/:creator_id", handler.GetCreatorEarnings)

	req := httptest.NewRequest(http.MethodGet, "/payments/creator/creator-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp EarningsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "500", resp.TotalEarned)
	assert.Equal(t, "creator-1", resp.CreatorID)
	mockUseCase.AssertExpectations(t)
}

func TestGetSubscriptionStatus_Active(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	sub := &entity.Subscription{
		ID:        "sub-1",
		UserID:    "user-1",
		CreatorID: "creator-1",
		IsActive:  true,
		EndDate:   time.Now().Add(24 * time.Hour),
	}
	mockUseCase.On("GetSubscriptionStatus", "user-1", "creator-1").Return(sub, true, nil)

	router := setupTestRouter("user-1", "0xwallet")
	router.GET("/subscriptions/:user_id/:creator_id/status", handler.GetSubscriptionStatus)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/user-1/creator-1/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SubscriptionStatusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Active)
	assert.Equal(t, "sub-1", resp.Subscription.ID)
	mockUseCase.AssertExpectations(t)
}

func TestGetSubscriptionStatus_NoSubscription(t *testing.T) {
	mockUseCase := new(MockPaymentUseCase)
	handler := NewPaymentHandler(mockUseCase, logger.New())

	mockUseCase.On("GetSubscriptionStatus", "user-1", "creator-9").Return(nil, false, gorm.ErrRecordNotFound)

	router := setupTestRouter("user-1", "0xwallet")
	router.GET("/subscriptions/:user_id/:creator_id/status", handler.GetSubscriptionStatus)

	req := httptest.NewRequest(http.MethodGet, "/subscriptions/user-1/creator-9/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp SubscriptionStatusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Active)
	assert.Nil(t, resp.Subscription)
	mockUseCase.AssertExpectations(t)
}
