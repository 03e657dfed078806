package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/citygrid/appeals-service/internal/domain"
)

type CameraUsecase struct {
	repo CameraRepository
}

func NewCameraUsecase(repo CameraRepository) *CameraUsecase {
	return &CameraUsecase{repo: repo}
}

func (uc *CameraUsecase) Get(ctx context.Context, id uuid.UUID) (domain.Camera, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *CameraUsecase) List(ctx context.Context, offset, limit int) ([]domain.Camera, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, offset, limit)
}

func (uc *CameraUsecase) Create(ctx context.Context, input CameraInput) (domain.Camera, error) {
	if input.Name == "" {
		return domain.Camera{}, domain.ValidationError{Reason: "name is required"}
	}
	if input.StreamURL == "" {
		return domain.Camera{}, domain.ValidationError{Reason: "stream_url is required"}
	}
	return uc.repo.Create(ctx, input)
}

func (uc *CameraUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.repo.Delete(ctx, id)
}
