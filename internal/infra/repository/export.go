package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/infra/database/models"
	"github.com/citygrid/appeals-service/internal/usecase"
)

type ExportRepository struct {
	db *gorm.DB
}

func NewExportRepository(db *gorm.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

type historyExportScan struct {
	HistoryID   uuid.UUID
	AppealID    uuid.UUID
	EventTime   time.Time
	EventType   string
	ChangedByID *uuid.UUID
	FieldName   string
	OldValue    string
	NewValue    string
	Comment     string
	TypeID      int64
	TypeName    string
}

func (r *ExportRepository) ListHistoryRows(ctx context.Context) ([]usecase.HistoryExportRow, error) {
	var scanned []historyExportScan
	err := r.db.WithContext(ctx).
		Table("appeal_histories").
		Select("appeal_histories.id AS history_id, appeal_histories.appeal_id, appeal_histories.event_time, appeal_histories.event_type, appeal_histories.changed_by_id, appeal_histories.field_name, appeal_histories.old_value, appeal_histories.new_value, appeal_histories.comment, appeals.type_id, appeal_types.name AS type_name").
		Joins("JOIN appeals ON appeals.id = appeal_histories.appeal_id").
		Joins("JOIN appeal_types ON appeal_types.id = appeals.type_id").
		Order("appeal_histories.event_time ASC").
		Scan(&scanned).Error
	if err != nil {
		return nil, err
	}

	rows := make([]usecase.HistoryExportRow, 0, len(scanned))
	for _, s := range scanned {
		rows = append(rows, usecase.HistoryExportRow{
			HistoryID:   s.HistoryID.String(),
			AppealID:    s.AppealID.String(),
			EventTime:   s.EventTime.Format(time.RFC3339),
			EventType:   s.EventType,
			ChangedByID: uuidText(s.ChangedByID),
			FieldName:   s.FieldName,
			OldValue:    s.OldValue,
			NewValue:    s.NewValue,
			Comment:     s.Comment,
			TypeID:      s.TypeID,
			TypeName:    s.TypeName,
		})
	}
	return rows, nil
}

func (r *ExportRepository) ListAppealRows(ctx context.Context) ([]domain.Appeal, error) {
	var records []models.Appeal
	err := r.db.WithContext(ctx).
		Preload("Type").Preload("Severity").Preload("Status").
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	appeals := make([]domain.Appeal, 0, len(records))
	for _, record := range records {
		appeals = append(appeals, toDomainAppeal(record))
	}
	return appeals, nil
}
