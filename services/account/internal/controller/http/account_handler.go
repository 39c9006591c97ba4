package http

import (
	"errors"
	"net/http"
	"strconv"

	"etn-patron/pkg/logger"
	"etn-patron/services/account/internal/entity"
	"etn-patron/services/account/internal/usecase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	logger         *logger.Logger
}

func NewAccountHandler(accountUseCase usecase.AccountUseCase, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

type LoginRequest struct {
	Wallet    string `json:"wallet" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type UpsertUserRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	Bio           string `json:"bio"`
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Email       *string `json:"email"`
}

type CreatorRequest struct {
	SubPrice    string `json:"sub_price"`
	Category    string `json:"category"`
	Description string `json:"description"`
	BannerURL   string `json:"banner_url"`
}

// GetNonce godoc
// @Summary      Request a login nonce
// @Description  Issue a one-time message the wallet must sign to log in
// @Tags         auth
// @Produce      json
// @Param        wallet query string true "Wallet address"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /auth/nonce [get]
func (h *AccountHandler) GetNonce(c *gin.Context) {
	wallet := c.Query("wallet")
	if wallet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet query parameter is required"})
		return
	}

	message, err := h.accountUseCase.IssueNonce(wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Login godoc
// @Summary      Log in with a wallet signature
// @Description  Verify a personal_sign of the issued nonce message and return a session token. Creates the user on first login.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Wallet and signature"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.accountUseCase.Login(req.Wallet, req.Signature)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

// UpsertUser godoc
// @Summary      Create or update a user by wallet
// @Description  Creates the user for a wallet address, or updates the existing record if the wallet is already registered
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpsertUserRequest true "User data"
// @Success      200  {object}  entity.User
// @Success      201  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users [post]
func (h *AccountHandler) UpsertUser(c *gin.Context) {
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, created, err := h.accountUseCase.UpsertUser(usecase.UserInput{
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
		Email:         req.Email,
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
	})
	if err != nil {
		if err.Error() == "username already taken" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to upsert user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if created {
		c.JSON(http.StatusCreated, user)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *AccountHandler) GetUser(c *gin.Context) {
	user, err := h.accountUseCase.GetUser(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserByWallet godoc
// @Summary      Get user by wallet address
// @Tags         users
// @Produce      json
// @Param        wallet path string true "Wallet address"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/wallet/{wallet} [get]
func (h *AccountHandler) GetUserByWallet(c *gin.Context) {
	user, err := h.accountUseCase.GetUserByWallet(c.Param("wallet"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Fields to update"
// @Success      200  {object}  entity.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [put]
func (h *AccountHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accountUseCase.UpdateUser(c.Param("id"), c.GetString("user_id"), req.DisplayName, req.Bio, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case err.Error() == "you can only update your own profile":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadAvatar godoc
// @Summary      Upload an avatar image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image (jpg/png)"
// @Success      200  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/avatar [post]
func (h *AccountHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file"})
		return
	}
	defer src.Close()

	user, err := h.accountUseCase.UploadAvatar(c.GetString("user_id"), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("Failed to upload avatar: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// RegisterCreator godoc
// @Summary      Register the authenticated user as a creator
// @Tags         creators
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatorRequest true "Creator profile data"
// @Success      201  {object}  entity.CreatorProfile
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /creators [post]
func (h *AccountHandler) RegisterCreator(c *gin.Context) {
	var req CreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.accountUseCase.RegisterCreator(c.GetString("user_id"), usecase.CreatorInput{
		SubPrice:    req.SubPrice,
		Category:    req.Category,
		Description: req.Description,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case err.Error() == "creator profile already exists":
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// GetCreator godoc
// @Summary      Get a creator profile
// @Tags         creators
// @Produce      json
// @Param        id path string true "Creator profile ID"
// @Success      200  {object}  entity.CreatorProfile
// @Failure      404  {object}  map[string]string
// @Router       /creators/{id} [get]
func (h *AccountHandler) GetCreator(c *gin.Context) {
	profile, err := h.accountUseCase.GetCreator(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListCreators godoc
// @Summary      List creator profiles
// @Tags         creators
// @Produce      json
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Param        category query string false "Category filter"
// @Success      200  {array}  entity.CreatorProfile
// @Router       /creators [get]
func (h *AccountHandler) ListCreators(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	profiles, err := h.accountUseCase.ListCreators(limit, offset, c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// UpdateCreator godoc
// @Summary      Update own creator profile
// @Tags         creators
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Creator profile ID"
// @Param        request body CreatorRequest true "Fields to update"
// @Success      200  {object}  entity.CreatorProfile
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /creators/{id} [put]
func (h *AccountHandler) UpdateCreator(c *gin.Context) {
	var req CreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.accountUseCase.UpdateCreator(c.Param("id"), c.GetString("user_id"), usecase.CreatorInput{
		SubPrice:    req.SubPrice,
		Category:    req.Category,
		Description: req.Description,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Creator not found"})
		case err.Error() == "you can only update your own creator profile":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}
