package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/citygrid/appeals-service/internal/domain"
)

type BuildingConfigUsecase struct {
	repo BuildingConfigRepository
}

func NewBuildingConfigUsecase(repo BuildingConfigRepository) *BuildingConfigUsecase {
	return &BuildingConfigUsecase{repo: repo}
}

func (uc *BuildingConfigUsecase) Get(ctx context.Context, id uuid.UUID) (domain.BuildingConfig, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *BuildingConfigUsecase) List(ctx context.Context, offset, limit int) ([]domain.BuildingConfig, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, offset, limit)
}

func (uc *BuildingConfigUsecase) Create(ctx context.Context, input BuildingConfigInput) (domain.BuildingConfig, error) {
	if input.BuildName == "" {
		return domain.BuildingConfig{}, domain.ValidationError{Reason: "name_build is required"}
	}
	return uc.repo.Create(ctx, input)
}

func (uc *BuildingConfigUsecase) Update(ctx context.Context, id uuid.UUID, patch BuildingConfigPatch) (domain.BuildingConfig, error) {
	return uc.repo.Update(ctx, id, patch)
}

func (uc *BuildingConfigUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.repo.Delete(ctx, id)
}
