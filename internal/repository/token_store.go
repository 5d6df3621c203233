// Package repository persists the catalog API token.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/storefront/internal/models"
)

// TokenStore keeps one token per key in the database.
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore constructs TokenStore.
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Load returns the token stored under key. ok is false when none is stored.
func (s *TokenStore) Load(ctx context.Context, key string) (*models.StoredToken, bool, error) {
	var token models.StoredToken
	if err := s.db.WithContext(ctx).First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &token, true, nil
}

// Save stores token under key, replacing any previous token.
func (s *TokenStore) Save(ctx context.Context, key, token string, expiresAt *time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.StoredToken
		err := tx.First(&existing, "key = ?", key).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.StoredToken{Key: key, Token: token, ExpiresAt: expiresAt}).Error
		}
		if err != nil {
			return err
		}

		existing.Token = token
		existing.ExpiresAt = expiresAt
		return tx.Save(&existing).Error
	})
}

// Delete removes the token stored under key. Deleting a missing key is not
// an error.
func (s *TokenStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.StoredToken{}, "key = ?", key).Error
}
