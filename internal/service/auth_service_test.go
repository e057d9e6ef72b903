package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"starblog/internal/auth"
	apperrors "starblog/internal/errors"
	"starblog/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockEmailVerifier is a mock implementation of EmailVerifier.
type MockEmailVerifier struct {
	mock.Mock
}

func (m *MockEmailVerifier) Verify(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockEmailVerifier)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mVerifier *MockEmailVerifier) {
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				mVerifier.On("Verify", mock.Anything, "alice@example.com").Return(nil)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "taken",
			email:    "new@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mVerifier *MockEmailVerifier) {
				mRepo.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:     "email already taken",
			username: "bob",
			email:    "taken@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mVerifier *MockEmailVerifier) {
				mRepo.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "email rejected by checker",
			username: "carol",
			email:    "asdkjhqwe@nonsense.example",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mVerifier *MockEmailVerifier) {
				mRepo.On("FindByUsername", mock.Anything, "carol").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("FindByEmail", mock.Anything, "asdkjhqwe@nonsense.example").Return(nil, gorm.ErrRecordNotFound)
				mVerifier.On("Verify", mock.Anything, "asdkjhqwe@nonsense.example").Return(apperrors.ErrEmailRejected)
			},
			expectedError: apperrors.ErrEmailRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockVerifier := new(MockEmailVerifier)
			tt.setupMock(mockRepo, mockVerifier)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)

			svc := NewAuthService(mockRepo, jwtService, mockTokenStore, mockVerifier)
			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
			mockVerifier.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           7,
					Username:     "alice",
					Email:        "alice@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "alice", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "not-the-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           7,
					Username:     "alice",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, mockTokenStore, new(MockEmailVerifier))

			accessToken, refreshToken, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice")
	assert.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(7), "alice", nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockEmailVerifier))
		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("token not in store", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", assert.AnError)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockEmailVerifier))
		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		assert.Empty(t, accessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), new(MockEmailVerifier))
		accessToken, err := svc.RefreshToken(context.Background(), "not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		assert.Empty(t, accessToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice")
	assert.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockEmailVerifier))
	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	mockTokenStore.AssertExpectations(t)
}
