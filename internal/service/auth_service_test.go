package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lostfound/internal/auth"
	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "admin-password"
)

func newAuthService(repo *MockUserRepository) AuthService {
	return NewAuthService(
		repo,
		auth.NewJWTService("test-secret"),
		auth.NewPasswordHasher("test-password-secret"),
		testAdminEmail,
		testAdminPassword,
	)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "missing username",
			username:      "  ",
			email:         "alice@example.com",
			password:      "password123",
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "missing email",
			username:      "alice",
			email:         "",
			password:      "password123",
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name:          "password too short",
			username:      "alice",
			email:         "alice@example.com",
			password:      "12345",
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrPasswordTooShort,
		},
		{
			name:          "bootstrap admin email is reserved",
			username:      "mallory",
			email:         testAdminEmail,
			password:      "password123",
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "email already taken",
			username: "alice",
			email:    "taken@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").
					Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "email taken by concurrent registration",
			username: "alice",
			email:    "racy@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "racy@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthService(mockRepo)
			token, user, err := service.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, user)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher("test-password-secret")
	userID := uuid.New()
	stored := &model.User{
		ID:           userID,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hasher.Hash("password123"),
		Role:         model.RoleUser,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "password124",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "admin email with wrong password goes through the store",
			email:    testAdminEmail,
			password: "not-the-admin-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, testAdminEmail).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthService(mockRepo)
			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, user)
				assert.Equal(t, userID, user.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginBootstrapAdmin(t *testing.T) {
	// The configured admin pair never touches the user store.
	mockRepo := new(MockUserRepository)
	service := newAuthService(mockRepo)

	token, user, err := service.Login(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, uuid.Nil, user.ID)
	assert.Equal(t, testAdminEmail, user.Email)
	assert.Equal(t, model.RoleAdmin, user.Role)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)

	claims, err := auth.NewJWTService("test-secret").ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestAuthService_CurrentUser(t *testing.T) {
	userID := uuid.New()

	t.Run("stored user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, Email: "alice@example.com"}, nil)

		service := newAuthService(mockRepo)
		user, err := service.CurrentUser(context.Background(), auth.Identity{ID: userID, Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("bootstrap admin", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := newAuthService(mockRepo)

		user, err := service.CurrentUser(context.Background(), auth.Identity{ID: uuid.Nil, Email: testAdminEmail, Role: model.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("deleted user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := newAuthService(mockRepo)
		_, err := service.CurrentUser(context.Background(), auth.Identity{ID: userID})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
