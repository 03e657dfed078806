package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/infra/database/models"
	"github.com/citygrid/appeals-service/internal/usecase"
)

const buildingConfigCacheTTL = 300 // seconds

// BuildingConfigRepository stores per-building configuration blobs with a
// memcached read-through on single-key gets. The cache client may be nil
// when memcached is not configured.
type BuildingConfigRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewBuildingConfigRepository(db *gorm.DB, mc *memcache.Client) *BuildingConfigRepository {
	return &BuildingConfigRepository{db: db, mc: mc}
}

func (r *BuildingConfigRepository) Get(ctx context.Context, id uuid.UUID) (domain.BuildingConfig, error) {
	if cached, ok := r.cacheGet(id); ok {
		return cached, nil
	}

	var record models.BuildingConfig
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BuildingConfig{}, domain.NotFoundError{Resource: "building config"}
		}
		return domain.BuildingConfig{}, err
	}

	cfg := toDomainBuildingConfig(record)
	r.cacheSet(cfg)
	return cfg, nil
}

func (r *BuildingConfigRepository) List(ctx context.Context, offset, limit int) ([]domain.BuildingConfig, error) {
	var records []models.BuildingConfig
	err := r.db.WithContext(ctx).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	configs := make([]domain.BuildingConfig, 0, len(records))
	for _, record := range records {
		configs = append(configs, toDomainBuildingConfig(record))
	}
	return configs, nil
}

func (r *BuildingConfigRepository) Create(ctx context.Context, input usecase.BuildingConfigInput) (domain.BuildingConfig, error) {
	cfg := datatypes.JSONMap(input.Config)
	if cfg == nil {
		cfg = datatypes.JSONMap{}
	}
	record := models.BuildingConfig{
		ID:        uuid.New(),
		BuildID:   input.BuildID,
		BuildName: input.BuildName,
		Config:    cfg,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.BuildingConfig{}, err
	}
	return r.Get(ctx, record.ID)
}

func (r *BuildingConfigRepository) Update(ctx context.Context, id uuid.UUID, patch usecase.BuildingConfigPatch) (domain.BuildingConfig, error) {
	fields := map[string]any{}
	if patch.BuildID != nil {
		fields["build_id"] = *patch.BuildID
	}
	if patch.BuildName != nil {
		fields["build_name"] = *patch.BuildName
	}
	if patch.Config != nil {
		fields["config"] = datatypes.JSONMap(patch.Config)
	}
	fields["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&models.BuildingConfig{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return domain.BuildingConfig{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.BuildingConfig{}, domain.NotFoundError{Resource: "building config"}
	}

	r.cacheDelete(id)
	return r.Get(ctx, id)
}

func (r *BuildingConfigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BuildingConfig{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "building config"}
	}

	r.cacheDelete(id)
	return nil
}

func (r *BuildingConfigRepository) cacheGet(id uuid.UUID) (domain.BuildingConfig, bool) {
	if r.mc == nil {
		return domain.BuildingConfig{}, false
	}
	item, err := r.mc.Get(buildingConfigCacheKey(id))
	if err != nil {
		return domain.BuildingConfig{}, false
	}
	var cfg domain.BuildingConfig
	if err := json.Unmarshal(item.Value, &cfg); err != nil {
		return domain.BuildingConfig{}, false
	}
	return cfg, true
}

func (r *BuildingConfigRepository) cacheSet(cfg domain.BuildingConfig) {
	if r.mc == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	err = r.mc.Set(&memcache.Item{
		Key:        buildingConfigCacheKey(cfg.ID),
		Value:      raw,
		Expiration: buildingConfigCacheTTL,
	})
	if err != nil {
		slog.Debug(
			"Failed to cache building config",
			slog.String("error", err.Error()),
			slog.String("module", "repository"),
		)
	}
}

func (r *BuildingConfigRepository) cacheDelete(id uuid.UUID) {
	if r.mc == nil {
		return
	}
	_ = r.mc.Delete(buildingConfigCacheKey(id))
}

func buildingConfigCacheKey(id uuid.UUID) string {
	return "building-config:" + id.String()
}

func toDomainBuildingConfig(record models.BuildingConfig) domain.BuildingConfig {
	return domain.BuildingConfig{
		ID:        record.ID,
		BuildID:   record.BuildID,
		BuildName: record.BuildName,
		Config:    record.Config,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
