package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/model"
)

// ClaimRepository defines claim persistence operations.
type ClaimRepository interface {
	Create(ctx context.Context, claim *model.Claim) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Claim, error)
	FindByItemAndClaimant(ctx context.Context, itemID, claimantID uuid.UUID) (*model.Claim, error)
	ListForItemOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Claim, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// ApproveAndClaimItem marks the claim approved and the parent item
	// claimed as one logical unit, so the two writes cannot diverge.
	ApproveAndClaimItem(ctx context.Context, claimID, itemID uuid.UUID) error
	CountByItem(ctx context.Context) (map[uuid.UUID]int64, error)
	CountByClaimant(ctx context.Context) (map[uuid.UUID]int64, error)
}

type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository builds a GORM-backed repository.
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(ctx context.Context, claim *model.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *claimRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Claim, error) {
	var claim model.Claim
	if err := r.db.WithContext(ctx).Preload("Item").
		Where("id = ?", id).First(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) FindByItemAndClaimant(ctx context.Context, itemID, claimantID uuid.UUID) (*model.Claim, error) {
	var claim model.Claim
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND claimed_by = ?", itemID, claimantID).
		First(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) ListForItemOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Claim, error) {
	var claims []model.Claim
	if err := r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = claims.item_id").
		Where("items.posted_by = ?", ownerID).
		Preload("Item").Preload("Claimant").
		Order("claims.created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *claimRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Claim{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *claimRepository) ApproveAndClaimItem(ctx context.Context, claimID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Claim{}).
			Where("id = ?", claimID).
			Update("status", model.ClaimStatusApproved).Error; err != nil {
			return err
		}
		return tx.Model(&model.Item{}).
			Where("id = ?", itemID).
			Update("status", model.ItemStatusClaimed).Error
	})
}

func (r *claimRepository) CountByItem(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		ItemID uuid.UUID
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Claim{}).
		Select("item_id, COUNT(*) AS total").
		Group("item_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ItemID] = row.Total
	}
	return counts, nil
}

func (r *claimRepository) CountByClaimant(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		ClaimedBy uuid.UUID
		Total     int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Claim{}).
		Select("claimed_by, COUNT(*) AS total").
		Group("claimed_by").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ClaimedBy] = row.Total
	}
	return counts, nil
}
