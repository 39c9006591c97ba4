package usecase

import (
	"testing"

	"etn-patron/pkg/logger"
	"etn-patron/services/account/internal/entity"
	"etn-patron/services/account/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByWallet(wallet string) (*entity.User, error) {
	args := m.Called(wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) CreateCreatorProfile(profile *entity.CreatorProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetCreatorProfile(id string) (*entity.CreatorProfile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockUserRepository) GetCreatorProfileByUserID(userID string) (*entity.CreatorProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockUserRepository) UpdateCreatorProfile(profile *entity.CreatorProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserRepository) ListCreatorProfiles(limit, offset int, category string) ([]*entity.CreatorProfile, error) {
	args := m.Called(limit, offset, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CreatorProfile), args.Error(1)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func newTestUseCase(repo persistent.UserRepository) AccountUseCase {
	return NewAccountUseCase(repo, nil, nil, nil, logger.New())
}

func TestUpsertUser_CreatesNewUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	wallet := "0xAbCd000000000000000000000000000000000001"

	mockRepo.On("GetByWallet", wallet).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, created, err := uc.UpsertUser(UserInput{
		WalletAddress: wallet,
		Username:      "alice",
		DisplayName:   "Alice",
	})

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "0xabcd000000000000000000000000000000000001", user.WalletAddress)
	mockRepo.AssertExpectations(t)
}

func TestUpsertUser_UpdatesExistingUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	wallet := "0xabcd000000000000000000000000000000000001"
	existing := &entity.User{
		ID:            "user-1",
		WalletAddress: wallet,
		Username:      "alice",
	}

	mockRepo.On("GetByWallet", wallet).Return(existing, nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	user, created, err := uc.UpsertUser(UserInput{
		WalletAddress: wallet,
		Bio:           "hello",
	})

	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "hello", user.Bio)
	assert.Equal(t, "alice", user.Username)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpsertUser_DefaultUsernameFromWallet(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	wallet := "0xDeadBeef00000000000000000000000000000001"

	mockRepo.On("GetByWallet", wallet).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("GetByUsername", "user_deadbeef").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, created, err := uc.UpsertUser(UserInput{WalletAddress: wallet})

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "user_deadbeef", user.Username)
}

func TestUpsertUser_UsernameConflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	wallet := "0xabcd000000000000000000000000000000000002"

	mockRepo.On("GetByWallet", wallet).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("GetByUsername", "taken").Return(&entity.User{ID: "other"}, nil)

	user, created, err := uc.UpsertUser(UserInput{
		WalletAddress: wallet,
		Username:      "taken",
	})

	assert.Nil(t, user)
	assert.False(t, created)
	assert.EqualError(t, err, "username already taken")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUpdateUser_OwnerOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	mockRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1"}, nil)

	bio := "new bio"
	user, err := uc.UpdateUser("user-1", "user-2", nil, &bio, nil)

	assert.Nil(t, user)
	assert.EqualError(t, err, "you can only update your own profile")
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateUser_AppliesFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	existing := &entity.User{ID: "user-1", Username: "alice"}
	mockRepo.On("GetByID", "user-1").Return(existing, nil)
	mockRepo.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	displayName := "Alice A."
	user, err := uc.UpdateUser("user-1", "user-1", &displayName, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Alice A.", user.DisplayName)
	mockRepo.AssertExpectations(t)
}

func TestRegisterCreator_AlreadyExists(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	mockRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1"}, nil)
	mockRepo.On("GetCreatorProfileByUserID", "user-1").Return(&entity.CreatorProfile{ID: "cp-1"}, nil)

	profile, err := uc.RegisterCreator("user-1", CreatorInput{SubPrice: "1000000000000000000"})

	assert.Nil(t, profile)
	assert.EqualError(t, err, "creator profile already exists")
	mockRepo.AssertNotCalled(t, "CreateCreatorProfile", mock.Anything)
}

func TestRegisterCreator_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	mockRepo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1"}, nil)
	mockRepo.On("GetCreatorProfileByUserID", "user-1").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("CreateCreatorProfile", mock.AnythingOfType("*entity.CreatorProfile")).Return(nil)

	profile, err := uc.RegisterCreator("user-1", CreatorInput{
		SubPrice: "5000000000000000000",
		Category: "music",
	})

	assert.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "5000000000000000000", profile.SubPrice)
	mockRepo.AssertExpectations(t)
}

func TestUpdateCreator_OwnerOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	uc := newTestUseCase(mockRepo)

	mockRepo.On("GetCreatorProfile", "cp-1").Return(&entity.CreatorProfile{ID: "cp-1", UserID: "user-1"}, nil)

	profile, err := uc.UpdateCreator("cp-1", "user-2", CreatorInput{Category: "art"})

	assert.Nil(t, profile)
	assert.EqualError(t, err, "you can only update your own creator profile")
	mockRepo.AssertNotCalled(t, "UpdateCreatorProfile", mock.Anything)
}
