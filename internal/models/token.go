package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoredToken persists a catalog API token under a named key, one row per
// key.
type StoredToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string     `gorm:"uniqueIndex;not null" json:"key"`
	Token     string     `gorm:"not null" json:"-"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (t *StoredToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
