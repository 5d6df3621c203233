package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "https://api.phatthanhcafe.com", cfg.CatalogBaseURL)
	assert.Equal(t, "token", cfg.CatalogTokenKey)
	assert.Equal(t, 15*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, []int{206}, cfg.DefaultCollections)
	assert.Equal(t, 1, cfg.QuantityMin)
	assert.Equal(t, 10, cfg.QuantityMax)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "3000")
	t.Setenv("CATALOG_API_URL", "http://localhost:9000/")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "3")
	t.Setenv("DEFAULT_COLLECTION_IDS", "201, 206")
	t.Setenv("QUANTITY_MAX", "20")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "http://localhost:9000", cfg.CatalogBaseURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, []int{201, 206}, cfg.DefaultCollections)
	assert.Equal(t, 20, cfg.QuantityMax)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"206", []int{206}},
		{"1, 2,x,3", []int{1, 2, 3}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseIDs(tt.in), "ParseIDs(%q)", tt.in)
	}
}
