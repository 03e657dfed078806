package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/citygrid/appeals-service/internal/domain"
)

// AppealUsecase is the only writer of appeal state. Every successful
// mutation emits exactly one change event, synchronously, after the commit;
// a failed broadcast never affects the mutation's outcome.
type AppealUsecase struct {
	repo        AppealRepository
	broadcaster Broadcaster
}

func NewAppealUsecase(repo AppealRepository, broadcaster Broadcaster) *AppealUsecase {
	return &AppealUsecase{repo: repo, broadcaster: broadcaster}
}

func (uc *AppealUsecase) Create(ctx context.Context, input CreateAppealInput, actor *uuid.UUID) (domain.Appeal, error) {
	if input.TypeID <= 0 {
		return domain.Appeal{}, domain.ValidationError{Reason: "type_id is required"}
	}
	if input.SeverityID <= 0 {
		return domain.Appeal{}, domain.ValidationError{Reason: "severity_id is required"}
	}
	if input.StatusID <= 0 {
		return domain.Appeal{}, domain.ValidationError{Reason: "status_id is required"}
	}
	if input.Source == "" {
		return domain.Appeal{}, domain.ValidationError{Reason: "source is required"}
	}

	appeal, err := uc.repo.Insert(ctx, input, actor)
	if err != nil {
		return domain.Appeal{}, err
	}

	uc.broadcaster.Broadcast(domain.NewCreatedEvent(appeal))

	return appeal, nil
}

func (uc *AppealUsecase) Update(ctx context.Context, id uuid.UUID, patch UpdateAppealPatch, actor *uuid.UUID) (domain.Appeal, error) {
	appeal, err := uc.repo.Update(ctx, id, patch, actor)
	if err != nil {
		return domain.Appeal{}, err
	}

	uc.broadcaster.Broadcast(domain.NewUpdatedEvent(appeal))

	return appeal, nil
}

func (uc *AppealUsecase) SoftDelete(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (domain.Appeal, error) {
	deleted := true
	appeal, err := uc.repo.Update(ctx, id, UpdateAppealPatch{IsDeleted: &deleted}, actor)
	if err != nil {
		return domain.Appeal{}, err
	}

	uc.broadcaster.Broadcast(domain.NewDeletedEvent(appeal))

	return appeal, nil
}

func (uc *AppealUsecase) Get(ctx context.Context, id uuid.UUID) (domain.Appeal, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *AppealUsecase) List(ctx context.Context, offset, limit int, includeDeleted bool) ([]domain.Appeal, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, offset, limit, includeDeleted)
}

// GetHistory does not check that the appeal still exists: history for a
// soft-deleted appeal stays queryable, and an unknown id yields an empty
// slice.
func (uc *AppealUsecase) GetHistory(ctx context.Context, id uuid.UUID) ([]domain.AppealHistory, error) {
	return uc.repo.GetHistory(ctx, id)
}
