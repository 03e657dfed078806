package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appeal is one reported incident. Soft-deleted appeals keep their row and
// remain readable by id; they only drop out of default listings.
type Appeal struct {
	ID           uuid.UUID      `json:"id"`
	TicketNumber int64          `json:"ticket_number"`
	TypeID       int64          `json:"type_id"`
	TypeName     string         `json:"type_name"`
	SeverityID   int64          `json:"severity_id"`
	SeverityName string         `json:"severity_name"`
	StatusID     int64          `json:"status_id"`
	StatusName   string         `json:"status_name"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	Source       string         `json:"source"`
	ReporterID   *uuid.UUID     `json:"reporter_id"`
	AssignedToID *uuid.UUID     `json:"assigned_to_id"`
	Payload      map[string]any `json:"payload"`
	IsDeleted    bool           `json:"is_deleted"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AppealHistory is one append-only audit entry. Entries are written alongside
// the mutation that caused them and are never modified afterwards.
type AppealHistory struct {
	ID          uuid.UUID      `json:"id"`
	AppealID    uuid.UUID      `json:"appeal_id"`
	EventTime   time.Time      `json:"event_time"`
	EventType   string         `json:"event_type"`
	ChangedByID *uuid.UUID     `json:"changed_by_id"`
	FieldName   string         `json:"field_name,omitempty"`
	OldValue    string         `json:"old_value,omitempty"`
	NewValue    string         `json:"new_value,omitempty"`
	Comment     string         `json:"comment,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// Attachment links an uploaded file to an appeal.
type Attachment struct {
	ID           uuid.UUID  `json:"id"`
	AppealID     uuid.UUID  `json:"appeal_id"`
	UploadedByID *uuid.UUID `json:"uploaded_by_id"`
	FilePath     string     `json:"file_path"`
	FileName     string     `json:"file_name"`
	FileSize     int64      `json:"file_size"`
	ContentType  string     `json:"content_type"`
	UploadedAt   time.Time  `json:"uploaded_at"`
}
