package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/blob"
	"lostfound/internal/cache"
	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

// UserSummary is a user annotated with activity counts for the admin listing.
type UserSummary struct {
	model.User
	ItemsCount  int64 `json:"items_count"`
	ClaimsCount int64 `json:"claims_count"`
}

// AdminService handles cross-cutting administrative operations. Role gating
// happens in the access guard; the bootstrap admin account itself stays
// immutable here.
type AdminService interface {
	ListAllItems(ctx context.Context) ([]ItemWithClaims, error)
	ListAllUsers(ctx context.Context) ([]UserSummary, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}

type adminService struct {
	userRepo   repository.UserRepository
	itemRepo   repository.ItemRepository
	claimRepo  repository.ClaimRepository
	blobs      *blob.Client
	cache      *cache.Client
	adminEmail string
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	claimRepo repository.ClaimRepository,
	blobs *blob.Client,
	cache *cache.Client,
	adminEmail string,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		itemRepo:   itemRepo,
		claimRepo:  claimRepo,
		blobs:      blobs,
		cache:      cache,
		adminEmail: adminEmail,
	}
}

// ListAllItems returns every item with poster contact info and claim counts.
func (s *adminService) ListAllItems(ctx context.Context) ([]ItemWithClaims, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	counts, err := s.claimRepo.CountByItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("count claims: %w", err)
	}

	result := make([]ItemWithClaims, 0, len(items))
	for _, item := range items {
		result = append(result, ItemWithClaims{Item: item, ClaimsCount: counts[item.ID]})
	}
	return result, nil
}

// ListAllUsers returns every user with item/claim counts. The bootstrap
// admin record is synthesized when no stored row carries its email.
func (s *adminService) ListAllUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	itemCounts, err := s.itemRepo.CountByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	claimCounts, err := s.claimRepo.CountByClaimant(ctx)
	if err != nil {
		return nil, fmt.Errorf("count claims: %w", err)
	}

	hasAdmin := false
	result := make([]UserSummary, 0, len(users)+1)
	for _, user := range users {
		if user.Email == s.adminEmail {
			hasAdmin = true
			user.Role = model.RoleAdmin
		}
		result = append(result, UserSummary{
			User:        user,
			ItemsCount:  itemCounts[user.ID],
			ClaimsCount: claimCounts[user.ID],
		})
	}

	if !hasAdmin {
		synthesized := model.User{
			ID:        uuid.Nil,
			Username:  "admin",
			Email:     s.adminEmail,
			Role:      model.RoleAdmin,
			CreatedAt: time.Now(),
		}
		result = append([]UserSummary{{User: synthesized}}, result...)
	}
	return result, nil
}

// DeleteItem removes any item, bypassing the ownership check. Same cascade
// as an owner delete.
func (s *adminService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrItemNotFound
		}
		return fmt.Errorf("find item: %w", err)
	}

	if err := s.itemRepo.DeleteWithClaims(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	cleanupImage(ctx, s.blobs, item.ImageURL)
	s.invalidateItemCaches(ctx, id)
	return nil
}

// DeleteUser removes a user together with their claims and items (and those
// items' claims). The bootstrap admin account can never be deleted.
func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.Email == s.adminEmail {
		return apperrors.ErrProtectedAccount
	}

	// Snapshot image references before the rows disappear.
	items, err := s.itemRepo.ListByOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("list user items: %w", err)
	}

	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	for _, item := range items {
		cleanupImage(ctx, s.blobs, item.ImageURL)
		_ = s.cache.Delete(ctx, itemCacheKey(item.ID))
	}
	_ = s.cache.Delete(ctx, itemListCacheKey)
	return nil
}

// SetRole updates a user's role. The bootstrap admin role can never change.
func (s *adminService) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if !model.ValidRole(role) {
		return apperrors.ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.Email == s.adminEmail {
		return apperrors.ErrProtectedAccount
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (s *adminService) invalidateItemCaches(ctx context.Context, id uuid.UUID) {
	_ = s.cache.Delete(ctx, itemListCacheKey)
	_ = s.cache.Delete(ctx, itemCacheKey(id))
}
