package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/auth"
	"lostfound/internal/blob"
	"lostfound/internal/cache"
	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

const (
	itemListCacheKey = "items:all"
	itemCacheTTL     = time.Minute
)

// ImageUpload is an optional image attached to an item or claim.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// ItemWithClaims is an item annotated with its claim count.
type ItemWithClaims struct {
	model.Item
	ClaimsCount int64 `json:"claims_count"`
}

// ItemService handles the item lifecycle.
type ItemService interface {
	Create(ctx context.Context, owner auth.Identity, title, description, location string, image *ImageUpload) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListByOwner(ctx context.Context, owner auth.Identity) ([]ItemWithClaims, error)
	Delete(ctx context.Context, identity auth.Identity, id uuid.UUID) error
}

type itemService struct {
	itemRepo  repository.ItemRepository
	claimRepo repository.ClaimRepository
	blobs     *blob.Client
	cache     *cache.Client
}

// NewItemService creates a new item service.
func NewItemService(
	itemRepo repository.ItemRepository,
	claimRepo repository.ClaimRepository,
	blobs *blob.Client,
	cache *cache.Client,
) ItemService {
	return &itemService{
		itemRepo:  itemRepo,
		claimRepo: claimRepo,
		blobs:     blobs,
		cache:     cache,
	}
}

// Create posts a new item. An image upload failure degrades to a placeholder
// reference rather than failing the operation.
func (s *itemService) Create(ctx context.Context, owner auth.Identity, title, description, location string, image *ImageUpload) (*model.Item, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	location = strings.TrimSpace(location)
	if title == "" || description == "" || location == "" {
		return nil, apperrors.ErrMissingFields
	}

	imageURL := ""
	if image != nil {
		imageURL = s.uploadImage(ctx, "lost-items", title, image)
	}

	item := &model.Item{
		Title:       title,
		Description: description,
		Location:    location,
		ImageURL:    imageURL,
		PostedByID:  owner.ID,
		Status:      model.ItemStatusActive,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	_ = s.cache.Delete(ctx, itemListCacheKey)
	return item, nil
}

// List returns all items regardless of status, newest first, with poster info.
func (s *itemService) List(ctx context.Context) ([]model.Item, error) {
	var cached []model.Item
	if s.cache.GetJSON(ctx, itemListCacheKey, &cached) {
		return cached, nil
	}

	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items = publicItems(items)
	s.cache.SetJSON(ctx, itemListCacheKey, items, itemCacheTTL)
	return items, nil
}

// GetByID returns a single item with poster info.
func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var cached model.Item
	if s.cache.GetJSON(ctx, itemCacheKey(id), &cached) {
		return &cached, nil
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}

	s.cache.SetJSON(ctx, itemCacheKey(id), item, itemCacheTTL)
	return item, nil
}

// ListByOwner returns the caller's items with per-item claim counts.
func (s *itemService) ListByOwner(ctx context.Context, owner auth.Identity) ([]ItemWithClaims, error) {
	items, err := s.itemRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list owned items: %w", err)
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

// Delete removes an item. Only the owner (or an admin) may delete. Claims
// against the item go with it in one transaction; the stored image is removed
// best-effort afterwards.
func (s *itemService) Delete(ctx context.Context, identity auth.Identity, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrItemNotFound
		}
		return fmt.Errorf("find item: %w", err)
	}

	if item.PostedByID != identity.ID && !identity.IsAdmin() {
		return apperrors.ErrForbidden
	}

	if err := s.itemRepo.DeleteWithClaims(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	cleanupImage(ctx, s.blobs, item.ImageURL)
	_ = s.cache.Delete(ctx, itemListCacheKey)
	_ = s.cache.Delete(ctx, itemCacheKey(id))
	return nil
}

// uploadImage stores an image with the blob collaborator, falling back to a
// placeholder reference when the upload cannot be performed.
func (s *itemService) uploadImage(ctx context.Context, prefix, label string, image *ImageUpload) string {
	key := blob.NewKey(prefix, image.Filename)
	url, err := s.blobs.Put(ctx, key, image.ContentType, image.Reader)
	if err != nil {
		log.Printf("image upload failed, using placeholder: %v", err)
		return blob.Placeholder(label)
	}
	return url
}

// cleanupImage removes a stored image, logging failures without propagating
// them. Placeholder references have nothing to delete.
func cleanupImage(ctx context.Context, blobs *blob.Client, imageURL string) {
	if imageURL == "" || blob.IsPlaceholder(imageURL) {
		return
	}
	if err := blobs.Delete(ctx, imageURL); err != nil {
		log.Printf("image cleanup failed for %s: %v", imageURL, err)
	}
}

// publicItems strips poster contact detail from the unauthenticated listing.
// Only the poster's username is public; email and role stay behind auth.
func publicItems(items []model.Item) []model.Item {
	for i, item := range items {
		if item.PostedBy == nil {
			continue
		}
		poster := *item.PostedBy
		poster.Email = ""
		poster.Role = ""
		items[i].PostedBy = &poster
	}
	return items
}

func itemCacheKey(id uuid.UUID) string {
	return "item:" + id.String()
}
