package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lostfound/internal/model"
)

// ItemRepository defines item persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Item, error)
	// DeleteWithClaims removes all claims against the item and the item row
	// in one transaction.
	DeleteWithClaims(ctx context.Context, id uuid.UUID) error
	CountByOwner(ctx context.Context) (map[uuid.UUID]int64, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository builds a GORM-backed repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).Preload("PostedBy").
		Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).Preload("PostedBy").
		Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Where("posted_by = ?", ownerID).
		Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) DeleteWithClaims(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.Claim{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Item{}).Error
	})
}

func (r *itemRepository) CountByOwner(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		PostedBy uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Item{}).
		Select("posted_by, COUNT(*) AS total").
		Group("posted_by").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.PostedBy] = row.Total
	}
	return counts, nil
}
