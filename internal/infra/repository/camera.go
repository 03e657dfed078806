package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/infra/database/models"
	"github.com/citygrid/appeals-service/internal/usecase"
)

type CameraRepository struct {
	db *gorm.DB
}

func NewCameraRepository(db *gorm.DB) *CameraRepository {
	return &CameraRepository{db: db}
}

func (r *CameraRepository) Get(ctx context.Context, id uuid.UUID) (domain.Camera, error) {
	var record models.Camera
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Camera{}, domain.NotFoundError{Resource: "camera"}
		}
		return domain.Camera{}, err
	}
	return toDomainCamera(record), nil
}

func (r *CameraRepository) List(ctx context.Context, offset, limit int) ([]domain.Camera, error) {
	var records []models.Camera
	err := r.db.WithContext(ctx).
		Order("created_at").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	cameras := make([]domain.Camera, 0, len(records))
	for _, record := range records {
		cameras = append(cameras, toDomainCamera(record))
	}
	return cameras, nil
}

func (r *CameraRepository) Create(ctx context.Context, input usecase.CameraInput) (domain.Camera, error) {
	record := models.Camera{
		ID:          uuid.New(),
		Name:        input.Name,
		StreamURL:   input.StreamURL,
		PTZEnabled:  input.PTZEnabled,
		PTZProtocol: input.PTZProtocol,
		Username:    input.Username,
		Password:    input.Password,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Camera{}, err
	}
	return r.Get(ctx, record.ID)
}

func (r *CameraRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Camera{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "camera"}
	}
	return nil
}

func toDomainCamera(record models.Camera) domain.Camera {
	return domain.Camera{
		ID:          record.ID,
		Name:        record.Name,
		StreamURL:   record.StreamURL,
		PTZEnabled:  record.PTZEnabled,
		PTZProtocol: record.PTZProtocol,
		Username:    record.Username,
		Password:    record.Password,
		CreatedAt:   record.CreatedAt,
	}
}
