package usecase

import (
	"context"

	"github.com/citygrid/appeals-service/internal/domain"
)

type ReferenceUsecase struct {
	repo ReferenceRepository
}

func NewReferenceUsecase(repo ReferenceRepository) *ReferenceUsecase {
	return &ReferenceUsecase{repo: repo}
}

func (uc *ReferenceUsecase) ListTypes(ctx context.Context) ([]domain.AppealType, error) {
	return uc.repo.ListTypes(ctx)
}

func (uc *ReferenceUsecase) ListSeverities(ctx context.Context) ([]domain.SeverityLevel, error) {
	return uc.repo.ListSeverities(ctx)
}

func (uc *ReferenceUsecase) ListStatuses(ctx context.Context) ([]domain.AppealStatus, error) {
	return uc.repo.ListStatuses(ctx)
}
