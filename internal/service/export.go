package service

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/usecase"
)

// ExportService renders export rows into xlsx workbooks.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

var historyHeader = []string{
	"history_id", "appeal_id", "event_time", "event_type", "changed_by_id",
	"field_name", "old_value", "new_value", "comment", "type_id", "type_name",
}

func (s *ExportService) HistoryWorkbook(rows []usecase.HistoryExportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "AppealHistory"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, sheet, 1, toAny(historyHeader)); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []any{
			row.HistoryID, row.AppealID, row.EventTime, row.EventType,
			row.ChangedByID, row.FieldName, row.OldValue, row.NewValue,
			row.Comment, row.TypeID, row.TypeName,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

var appealHeader = []string{
	"appeal_id", "ticket_number", "created_at", "updated_at",
	"type_id", "type_name", "severity_id", "severity_name",
	"status_id", "status_name", "location", "description", "source",
	"reporter_id", "assigned_to_id", "metadata", "is_deleted",
}

func (s *ExportService) AppealsWorkbook(appeals []domain.Appeal) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Appeals"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, sheet, 1, toAny(appealHeader)); err != nil {
		return nil, err
	}

	for i, a := range appeals {
		var reporter, assignee string
		if a.ReporterID != nil {
			reporter = a.ReporterID.String()
		}
		if a.AssignedToID != nil {
			assignee = a.AssignedToID.String()
		}
		var payload string
		if a.Payload != nil {
			raw, err := json.Marshal(a.Payload)
			if err != nil {
				return nil, err
			}
			payload = string(raw)
		}
		values := []any{
			a.ID.String(), a.TicketNumber,
			a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
			a.TypeID, a.TypeName, a.SeverityID, a.SeverityName,
			a.StatusID, a.StatusName, a.Location, a.Description, a.Source,
			reporter, assignee, payload, a.IsDeleted,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
