package domain

import (
	"time"

	"github.com/google/uuid"
)

// BuildingConfig is an opaque per-building configuration blob.
type BuildingConfig struct {
	ID        uuid.UUID      `json:"id"`
	BuildID   int64          `json:"id_build"`
	BuildName string         `json:"name_build"`
	Config    map[string]any `json:"config"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
