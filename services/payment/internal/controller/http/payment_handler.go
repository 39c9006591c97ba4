package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"etn-patron/pkg/logger"
	"etn-patron/services/payment/internal/entity"
	"etn-patron/services/payment/internal/usecase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         *logger.Logger
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

type PaymentRequest struct {
	TxHash    string `json:"tx_hash" binding:"required"`
	Type      string `json:"type" binding:"required"`
	ContentID string `json:"content_id"`
	CreatorID string `json:"creator_id"`
	Amount    string `json:"amount" binding:"required"`
}

type EarningsResponse struct {
	CreatorID    string                `json:"creator_id"`
	TotalEarned  string                `json:"total_earned"`
	Transactions []*entity.Transaction `json:"transactions"`
}

type SubscriptionStatusResponse struct {
	Subscription *entity.Subscription `json:"subscription,omitempty"`
	Active       bool                 `json:"active"`
}

// RecordPayment godoc
// @Summary      Record an on-chain payment
// @Description  Verifies the transaction hash on chain (receipt status, confirmations, recipient contract, amount, sender) before writing the ledger. Purchases are deduplicated; subscriptions are upserted per (user, creator).
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body PaymentRequest true "Payment claim"
// @Success      201  {object}  entity.Transaction
// @Failure      400  {object}  map[string]string
// @Failure      402  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.paymentUseCase.RecordPayment(c.Request.Context(), c.GetString("user_id"), c.GetString("wallet"), usecase.PaymentInput{
		TxHash:    req.TxHash,
		Type:      req.Type,
		ContentID: req.ContentID,
		CreatorID: req.CreatorID,
		Amount:    req.Amount,
	})
	if err != nil {
		switch {
		case strings.HasPrefix(err.Error(), "payment verification failed"):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case err.Error() == "transaction hash already recorded", err.Error() == "content already purchased":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err.Error() == "content not found", err.Error() == "creator not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err.Error() == "failed to record payment":
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// ListUserTransactions godoc
// @Summary      List own payment history
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "User ID"
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {array}  entity.Transaction
// @Failure      403  {object}  map[string]string
// @Router       /payments/user/{user_id} [get]
func (h *PaymentHandler) ListUserTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.paymentUseCase.ListUserTransactions(c.Param("user_id"), c.GetString("user_id"), limit, offset)
	if err != nil {
		if err.Error() == "you can only view your own transactions" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, txns)
}

// GetCreatorEarnings godoc
// @Summary      Creator earnings and incoming payments
// @Tags         payments
// @Produce      json
// @Param        creator_id path string true "Creator profile ID"
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  EarningsResponse
// @Router       /payments/creator/{creator_id} [get]
func (h *PaymentHandler) GetCreatorEarnings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	creatorID := c.Param("creator_id")
	total, txns, err := h.paymentUseCase.GetCreatorEarnings(creatorID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, EarningsResponse{
		CreatorID:    creatorID,
		TotalEarned:  total,
		Transactions: txns,
	})
}

// ListUserSubscriptions godoc
// @Summary      List own subscriptions
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "User ID"
// @Param        active query bool false "Only active subscriptions"
// @Success      200  {array}  entity.Subscription
// @Failure      403  {object}  map[string]string
// @Router       /subscriptions/user/{user_id} [get]
func (h *PaymentHandler) ListUserSubscriptions(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	subs, err := h.paymentUseCase.ListUserSubscriptions(c.Param("user_id"), c.GetString("user_id"), activeOnly)
	if err != nil {
		if err.Error() == "you can only view your own subscriptions" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, subs)
}

// GetSubscriptionStatus godoc
// @Summary      Subscription status between a user and a creator
// @Tags         subscriptions
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        creator_id path string true "Creator profile ID"
// @Success      200  {object}  SubscriptionStatusResponse
// @Router       /subscriptions/{user_id}/{creator_id}/status [get]
func (h *PaymentHandler) GetSubscriptionStatus(c *gin.Context) {
	sub, active, err := h.paymentUseCase.GetSubscriptionStatus(c.Param("user_id"), c.Param("creator_id"))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SubscriptionStatusResponse{Subscription: sub, Active: active})
}
