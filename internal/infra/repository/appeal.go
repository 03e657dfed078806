package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/infra/database/models"
	"github.com/citygrid/appeals-service/internal/usecase"
)

type AppealRepository struct {
	db *gorm.DB
}

func NewAppealRepository(db *gorm.DB) *AppealRepository {
	return &AppealRepository{db: db}
}

func (r *AppealRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Appeal, error) {
	var record models.Appeal
	err := r.db.WithContext(ctx).
		Preload("Type").Preload("Severity").Preload("Status").
		First(&record, "id = ?", id).Error
	if err != nil {
		return domain.Appeal{}, translateAppealErr(err)
	}
	return toDomainAppeal(record), nil
}

func (r *AppealRepository) List(ctx context.Context, offset, limit int, includeDeleted bool) ([]domain.Appeal, error) {
	query := r.db.WithContext(ctx).
		Preload("Type").Preload("Severity").Preload("Status").
		Order("created_at DESC").
		Offset(offset).Limit(limit)
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var records []models.Appeal
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	appeals := make([]domain.Appeal, 0, len(records))
	for _, record := range records {
		appeals = append(appeals, toDomainAppeal(record))
	}
	return appeals, nil
}

func (r *AppealRepository) Insert(ctx context.Context, input usecase.CreateAppealInput, actor *uuid.UUID) (domain.Appeal, error) {
	id := uuid.New()
	payload := datatypes.JSONMap(input.Payload)
	if payload == nil {
		payload = datatypes.JSONMap{}
	}

	record := models.Appeal{
		ID:           id,
		TypeID:       input.TypeID,
		SeverityID:   input.SeverityID,
		StatusID:     input.StatusID,
		Location:     input.Location,
		Description:  input.Description,
		Source:       input.Source,
		ReporterID:   input.ReporterID,
		AssignedToID: input.AssignedToID,
		Payload:      payload,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&models.AppealHistory{
			ID:          uuid.New(),
			AppealID:    id,
			EventType:   domain.EventTypeCreate,
			ChangedByID: actor,
		}).Error
	})
	if err != nil {
		return domain.Appeal{}, translateAppealErr(err)
	}

	return r.GetByID(ctx, id)
}

func (r *AppealRepository) Update(ctx context.Context, id uuid.UUID, patch usecase.UpdateAppealPatch, actor *uuid.UUID) (domain.Appeal, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Appeal
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			return err
		}

		eventType := domain.EventTypeUpdate
		if patch.IsDeleted != nil && *patch.IsDeleted && !current.IsDeleted {
			eventType = domain.EventTypeDelete
		}

		fields := map[string]any{}
		var trail []models.AppealHistory
		record := func(field, oldValue, newValue string) {
			trail = append(trail, models.AppealHistory{
				ID:          uuid.New(),
				AppealID:    id,
				EventType:   eventType,
				ChangedByID: actor,
				FieldName:   field,
				OldValue:    oldValue,
				NewValue:    newValue,
			})
		}

		if patch.StatusID != nil && *patch.StatusID != current.StatusID {
			fields["status_id"] = *patch.StatusID
			record("status_id", strconv.FormatInt(current.StatusID, 10), strconv.FormatInt(*patch.StatusID, 10))
		}
		if patch.AssignedToID != nil {
			fields["assigned_to_id"] = *patch.AssignedToID
			record("assigned_to_id", uuidText(current.AssignedToID), patch.AssignedToID.String())
		}
		if patch.Location != nil && *patch.Location != current.Location {
			fields["location"] = *patch.Location
			record("location", current.Location, *patch.Location)
		}
		if patch.Description != nil && *patch.Description != current.Description {
			fields["description"] = *patch.Description
			record("description", current.Description, *patch.Description)
		}
		if patch.Payload != nil {
			fields["metadata"] = datatypes.JSONMap(patch.Payload)
			record("metadata", "", "")
		}
		if patch.IsDeleted != nil && *patch.IsDeleted != current.IsDeleted {
			fields["is_deleted"] = *patch.IsDeleted
			record("is_deleted", strconv.FormatBool(current.IsDeleted), strconv.FormatBool(*patch.IsDeleted))
		}

		fields["updated_at"] = time.Now().UTC()
		if err := tx.Model(&models.Appeal{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		if len(trail) > 0 {
			if err := tx.Create(&trail).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Appeal{}, translateAppealErr(err)
	}

	return r.GetByID(ctx, id)
}

func (r *AppealRepository) GetHistory(ctx context.Context, appealID uuid.UUID) ([]domain.AppealHistory, error) {
	var records []models.AppealHistory
	err := r.db.WithContext(ctx).
		Where("appeal_id = ?", appealID).
		Order("event_time DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	entries := make([]domain.AppealHistory, 0, len(records))
	for _, record := range records {
		entries = append(entries, domain.AppealHistory{
			ID:          record.ID,
			AppealID:    record.AppealID,
			EventTime:   record.EventTime,
			EventType:   record.EventType,
			ChangedByID: record.ChangedByID,
			FieldName:   record.FieldName,
			OldValue:    record.OldValue,
			NewValue:    record.NewValue,
			Comment:     record.Comment,
			Payload:     record.Payload,
		})
	}
	return entries, nil
}

func toDomainAppeal(record models.Appeal) domain.Appeal {
	return domain.Appeal{
		ID:           record.ID,
		TicketNumber: record.TicketNumber,
		TypeID:       record.TypeID,
		TypeName:     record.Type.Name,
		SeverityID:   record.SeverityID,
		SeverityName: record.Severity.Name,
		StatusID:     record.StatusID,
		StatusName:   record.Status.Name,
		Location:     record.Location,
		Description:  record.Description,
		Source:       record.Source,
		ReporterID:   record.ReporterID,
		AssignedToID: record.AssignedToID,
		Payload:      record.Payload,
		IsDeleted:    record.IsDeleted,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func uuidText(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func translateAppealErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError{Resource: "appeal"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ValidationError{Reason: "unknown reference id"}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ValidationError{Reason: "duplicate value for unique field"}
	default:
		return err
	}
}
