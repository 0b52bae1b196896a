package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item statuses. An item only ever moves active -> claimed, and only through
// approval of one of its claims.
const (
	ItemStatusActive  = "active"
	ItemStatusClaimed = "claimed"
)

// Item represents a lost/found report posted by a user.
type Item struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Location    string    `json:"location" gorm:"size:255;not null"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"size:1024"`
	PostedByID  uuid.UUID `json:"posted_by" gorm:"column:posted_by;type:char(36);index;not null"`
	Status      string    `json:"status" gorm:"size:50;default:'active';index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	PostedBy *User `json:"posted_by_user,omitempty" gorm:"foreignKey:PostedByID"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
