package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/citygrid/appeals-service/internal/domain"
)

type fakeAppealRepository struct {
	insertErr error
	updateErr error

	insertedInput CreateAppealInput
	updatedPatch  UpdateAppealPatch
	updatedID     uuid.UUID
	appeal        domain.Appeal
	history       []domain.AppealHistory
}

func (r *fakeAppealRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Appeal, error) {
	if r.appeal.ID != id {
		return domain.Appeal{}, domain.NotFoundError{Resource: "appeal"}
	}
	return r.appeal, nil
}

func (r *fakeAppealRepository) List(ctx context.Context, offset, limit int, includeDeleted bool) ([]domain.Appeal, error) {
	return []domain.Appeal{r.appeal}, nil
}

func (r *fakeAppealRepository) Insert(ctx context.Context, input CreateAppealInput, actor *uuid.UUID) (domain.Appeal, error) {
	if r.insertErr != nil {
		return domain.Appeal{}, r.insertErr
	}
	r.insertedInput = input
	return r.appeal, nil
}

func (r *fakeAppealRepository) Update(ctx context.Context, id uuid.UUID, patch UpdateAppealPatch, actor *uuid.UUID) (domain.Appeal, error) {
	if r.updateErr != nil {
		return domain.Appeal{}, r.updateErr
	}
	r.updatedID = id
	r.updatedPatch = patch
	updated := r.appeal
	if patch.IsDeleted != nil {
		updated.IsDeleted = *patch.IsDeleted
	}
	if patch.StatusID != nil {
		updated.StatusID = *patch.StatusID
	}
	return updated, nil
}

func (r *fakeAppealRepository) GetHistory(ctx context.Context, appealID uuid.UUID) ([]domain.AppealHistory, error) {
	return r.history, nil
}

type fakeBroadcaster struct {
	events []domain.ChangeEvent
}

func (b *fakeBroadcaster) Broadcast(event domain.ChangeEvent) {
	b.events = append(b.events, event)
}

func validInput() CreateAppealInput {
	return CreateAppealInput{
		TypeID:     1,
		SeverityID: 2,
		StatusID:   1,
		Location:   "block 4",
		Source:     "operator",
	}
}

func TestCreateAppealValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateAppealInput)
	}{
		{"missing type", func(in *CreateAppealInput) { in.TypeID = 0 }},
		{"missing severity", func(in *CreateAppealInput) { in.SeverityID = 0 }},
		{"missing status", func(in *CreateAppealInput) { in.StatusID = 0 }},
		{"missing source", func(in *CreateAppealInput) { in.Source = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppealRepository{}
			bc := &fakeBroadcaster{}
			uc := NewAppealUsecase(repo, bc)

			input := validInput()
			tt.mutate(&input)

			_, err := uc.Create(context.Background(), input, nil)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(bc.events) != 0 {
				t.Errorf("no event should be emitted on validation failure")
			}
		})
	}
}

func TestCreateAppealEmitsCreateEvent(t *testing.T) {
	repo := &fakeAppealRepository{appeal: domain.Appeal{ID: uuid.New(), TypeID: 1, SeverityID: 2, StatusID: 1, Source: "operator"}}
	bc := &fakeBroadcaster{}
	uc := NewAppealUsecase(repo, bc)

	appeal, err := uc.Create(context.Background(), validInput(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bc.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bc.events))
	}
	created, ok := bc.events[0].(domain.CreatedEvent)
	if !ok {
		t.Fatalf("expected CreatedEvent, got %T", bc.events[0])
	}
	if created.ID != appeal.ID.String() {
		t.Errorf("event id %s does not match appeal %s", created.ID, appeal.ID)
	}
}

func TestCreateAppealStoreFailureEmitsNothing(t *testing.T) {
	repo := &fakeAppealRepository{insertErr: errors.New("db down")}
	bc := &fakeBroadcaster{}
	uc := NewAppealUsecase(repo, bc)

	_, err := uc.Create(context.Background(), validInput(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(bc.events) != 0 {
		t.Errorf("no event should be emitted when the store rejects the write")
	}
}

func TestUpdateAppealEmitsUpdateEvent(t *testing.T) {
	id := uuid.New()
	repo := &fakeAppealRepository{appeal: domain.Appeal{ID: id, StatusID: 1}}
	bc := &fakeBroadcaster{}
	uc := NewAppealUsecase(repo, bc)

	status := int64(3)
	appeal, err := uc.Update(context.Background(), id, UpdateAppealPatch{StatusID: &status}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appeal.StatusID != 3 {
		t.Errorf("expected status 3, got %d", appeal.StatusID)
	}

	if len(bc.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bc.events))
	}
	if _, ok := bc.events[0].(domain.UpdatedEvent); !ok {
		t.Fatalf("expected UpdatedEvent, got %T", bc.events[0])
	}
}

func TestUpdateAppealNotFound(t *testing.T) {
	repo := &fakeAppealRepository{updateErr: domain.NotFoundError{Resource: "appeal"}}
	bc := &fakeBroadcaster{}
	uc := NewAppealUsecase(repo, bc)

	_, err := uc.Update(context.Background(), uuid.New(), UpdateAppealPatch{}, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(bc.events) != 0 {
		t.Errorf("no event should be emitted for a missing appeal")
	}
}

func TestSoftDeleteEmitsDeleteEvent(t *testing.T) {
	id := uuid.New()
	repo := &fakeAppealRepository{appeal: domain.Appeal{ID: id}}
	bc := &fakeBroadcaster{}
	uc := NewAppealUsecase(repo, bc)

	appeal, err := uc.SoftDelete(context.Background(), id, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !appeal.IsDeleted {
		t.Error("expected is_deleted to be set")
	}
	if repo.updatedPatch.IsDeleted == nil || !*repo.updatedPatch.IsDeleted {
		t.Error("soft delete must go through the is_deleted patch")
	}

	if len(bc.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bc.events))
	}
	deleted, ok := bc.events[0].(domain.DeletedEvent)
	if !ok {
		t.Fatalf("expected DeletedEvent, got %T", bc.events[0])
	}
	if deleted.Appeal.ID != id.String() || !deleted.Appeal.IsDeleted {
		t.Errorf("unexpected delete payload: %+v", deleted.Appeal)
	}
}

func TestGetHistoryUnknownAppealIsEmpty(t *testing.T) {
	repo := &fakeAppealRepository{}
	uc := NewAppealUsecase(repo, &fakeBroadcaster{})

	history, err := uc.GetHistory(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d rows", len(history))
	}
}
