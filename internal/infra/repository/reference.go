package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/infra/database/models"
)

const (
	cacheKeyTypes      = "reference:types"
	cacheKeySeverities = "reference:severities"
	cacheKeyStatuses   = "reference:statuses"
)

// ReferenceRepository serves the immutable lookup tables through an
// in-process cache. The tables are seeded out-of-band and never written by
// this service.
type ReferenceRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{
		db:    db,
		cache: cache.New(10*time.Minute, 15*time.Minute),
	}
}

func (r *ReferenceRepository) ListTypes(ctx context.Context) ([]domain.AppealType, error) {
	if cached, ok := r.cache.Get(cacheKeyTypes); ok {
		return cached.([]domain.AppealType), nil
	}

	var records []models.AppealType
	if err := r.db.WithContext(ctx).Order("sort_order").Find(&records).Error; err != nil {
		return nil, err
	}

	types := make([]domain.AppealType, 0, len(records))
	for _, record := range records {
		types = append(types, domain.AppealType{
			ID:          record.ID,
			Code:        record.Code,
			Name:        record.Name,
			Description: record.Description,
			SortOrder:   record.SortOrder,
		})
	}

	r.cache.SetDefault(cacheKeyTypes, types)
	return types, nil
}

func (r *ReferenceRepository) ListSeverities(ctx context.Context) ([]domain.SeverityLevel, error) {
	if cached, ok := r.cache.Get(cacheKeySeverities); ok {
		return cached.([]domain.SeverityLevel), nil
	}

	var records []models.SeverityLevel
	if err := r.db.WithContext(ctx).Order("priority").Find(&records).Error; err != nil {
		return nil, err
	}

	levels := make([]domain.SeverityLevel, 0, len(records))
	for _, record := range records {
		levels = append(levels, domain.SeverityLevel{
			ID:       record.ID,
			Code:     record.Code,
			Name:     record.Name,
			Priority: record.Priority,
		})
	}

	r.cache.SetDefault(cacheKeySeverities, levels)
	return levels, nil
}

func (r *ReferenceRepository) ListStatuses(ctx context.Context) ([]domain.AppealStatus, error) {
	if cached, ok := r.cache.Get(cacheKeyStatuses); ok {
		return cached.([]domain.AppealStatus), nil
	}

	var records []models.AppealStatus
	if err := r.db.WithContext(ctx).Order("sort_order").Find(&records).Error; err != nil {
		return nil, err
	}

	statuses := make([]domain.AppealStatus, 0, len(records))
	for _, record := range records {
		statuses = append(statuses, domain.AppealStatus{
			ID:        record.ID,
			Code:      record.Code,
			Name:      record.Name,
			SortOrder: record.SortOrder,
		})
	}

	r.cache.SetDefault(cacheKeyStatuses, statuses)
	return statuses, nil
}
