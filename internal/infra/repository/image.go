package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/infra/database/models"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, filename, filepath string) (domain.Image, error) {
	record := models.Image{
		ID:       uuid.New(),
		Filename: filename,
		Filepath: filepath,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Image{}, err
	}
	if err := r.db.WithContext(ctx).First(&record, "id = ?", record.ID).Error; err != nil {
		return domain.Image{}, err
	}
	return toDomainImage(record), nil
}

func (r *ImageRepository) List(ctx context.Context) ([]domain.Image, error) {
	var records []models.Image
	err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}

	images := make([]domain.Image, 0, len(records))
	for _, record := range records {
		images = append(images, toDomainImage(record))
	}
	return images, nil
}

func toDomainImage(record models.Image) domain.Image {
	return domain.Image{
		ID:         record.ID,
		Filename:   record.Filename,
		Filepath:   record.Filepath,
		UploadedAt: record.UploadedAt,
	}
}
