package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Claim is an assertion of ownership over an item by a non-owner user.
// The composite unique index on (item_id, claimed_by) serializes concurrent
// submissions for the same pair at the store, not in the application.
type Claim struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ItemID        uuid.UUID `json:"item_id" gorm:"type:char(36);not null;uniqueIndex:idx_claims_item_claimant"`
	ClaimedByID   uuid.UUID `json:"claimed_by" gorm:"column:claimed_by;type:char(36);not null;uniqueIndex:idx_claims_item_claimant"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	ProofImageURL string    `json:"proof_image_url,omitempty" gorm:"size:1024"`
	Status        string    `json:"status" gorm:"size:50;default:'pending';index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Item     *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Claimant *User `json:"claimant,omitempty" gorm:"foreignKey:ClaimedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Claim) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
