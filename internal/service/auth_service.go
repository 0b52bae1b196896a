package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/auth"
	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

const minPasswordLength = 6

// AuthService handles registration, login, and identity lookup.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	CurrentUser(ctx context.Context, identity auth.Identity) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	jwtService    *auth.JWTService
	hasher        *auth.PasswordHasher
	adminEmail    string
	adminPassword string
}

// NewAuthService creates a new authentication service. adminEmail and
// adminPassword are the bootstrap admin pair; a login matching them never
// touches the user store.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	hasher *auth.PasswordHasher,
	adminEmail, adminPassword string,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtService:    jwtService,
		hasher:        hasher,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Register creates a new user with a hashed password and returns a token.
func (s *authService) Register(ctx context.Context, username, email, password string) (string, *model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", nil, apperrors.ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return "", nil, apperrors.ErrPasswordTooShort
	}

	// The bootstrap admin identity lives in config only; registering its
	// email would let the guard's email override elevate the new account.
	if email == s.adminEmail {
		return "", nil, apperrors.ErrEmailTaken
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: s.hasher.Hash(password),
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index wins races the lookup above can miss.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, apperrors.ErrEmailTaken
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// Login authenticates a user and returns a token. Unknown email and wrong
// password produce the identical error so neither factor leaks.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	// Bootstrap admin bypass: checked before any store lookup so admin
	// access survives a store without an admin row.
	if email == s.adminEmail && password == s.adminPassword {
		admin := s.bootstrapAdmin()
		token, err := s.jwtService.GenerateToken(admin.ID, admin.Email, admin.Role)
		if err != nil {
			return "", nil, fmt.Errorf("generate token: %w", err)
		}
		return token, admin, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	role := user.Role
	if !model.ValidRole(role) {
		role = model.RoleUser
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// CurrentUser resolves the user record behind an authenticated identity.
func (s *authService) CurrentUser(ctx context.Context, identity auth.Identity) (*model.User, error) {
	if identity.ID == uuid.Nil && identity.Email == s.adminEmail {
		return s.bootstrapAdmin(), nil
	}

	user, err := s.userRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// bootstrapAdmin synthesizes the configured admin account, which may have no
// row in the user store.
func (s *authService) bootstrapAdmin() *model.User {
	return &model.User{
		ID:       uuid.Nil,
		Username: "admin",
		Email:    s.adminEmail,
		Role:     model.RoleAdmin,
	}
}
