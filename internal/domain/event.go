package domain

import "time"

const (
	EventTypeCreate = "create"
	EventTypeUpdate = "update"
	EventTypeDelete = "delete"
)

// ChangeEvent is one notification about an appeal state transition. It is a
// closed union over the create/update/delete variants below; the broadcaster
// serializes a variant exactly once per fan-out.
type ChangeEvent interface {
	changeEvent()
}

// CreatedEvent announces a new appeal. It carries only the id; consumers that
// need the full row fetch it by id.
type CreatedEvent struct {
	EventType string `json:"event_type"`
	ID        string `json:"id"`
}

// UpdatedEvent carries the full post-update projection.
type UpdatedEvent struct {
	EventType string        `json:"event_type"`
	Appeal    AppealPayload `json:"appeal"`
}

// DeletedEvent announces a soft delete.
type DeletedEvent struct {
	EventType string        `json:"event_type"`
	Appeal    DeletedAppeal `json:"appeal"`
}

func (CreatedEvent) changeEvent() {}
func (UpdatedEvent) changeEvent() {}
func (DeletedEvent) changeEvent() {}

// AppealPayload is the wire projection of an appeal: reference ids with their
// resolved names, provenance ids as strings or null, RFC 3339 timestamps.
type AppealPayload struct {
	ID           string         `json:"id"`
	TypeID       int64          `json:"type_id"`
	TypeName     string         `json:"type_name"`
	SeverityID   int64          `json:"severity_id"`
	SeverityName string         `json:"severity_name"`
	StatusID     int64          `json:"status_id"`
	StatusName   string         `json:"status_name"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	Source       string         `json:"source"`
	ReporterID   *string        `json:"reporter_id"`
	AssignedToID *string        `json:"assigned_to_id"`
	Payload      map[string]any `json:"payload"`
	IsDeleted    bool           `json:"is_deleted"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// DeletedAppeal is the minimal projection sent on soft delete.
type DeletedAppeal struct {
	ID        string `json:"id"`
	IsDeleted bool   `json:"is_deleted"`
}

func NewCreatedEvent(a Appeal) CreatedEvent {
	return CreatedEvent{
		EventType: EventTypeCreate,
		ID:        a.ID.String(),
	}
}

func NewUpdatedEvent(a Appeal) UpdatedEvent {
	return UpdatedEvent{
		EventType: EventTypeUpdate,
		Appeal:    ProjectAppeal(a),
	}
}

func NewDeletedEvent(a Appeal) DeletedEvent {
	return DeletedEvent{
		EventType: EventTypeDelete,
		Appeal: DeletedAppeal{
			ID:        a.ID.String(),
			IsDeleted: a.IsDeleted,
		},
	}
}

// ProjectAppeal builds the wire projection for an appeal.
func ProjectAppeal(a Appeal) AppealPayload {
	var reporter, assignee *string
	if a.ReporterID != nil {
		s := a.ReporterID.String()
		reporter = &s
	}
	if a.AssignedToID != nil {
		s := a.AssignedToID.String()
		assignee = &s
	}
	return AppealPayload{
		ID:           a.ID.String(),
		TypeID:       a.TypeID,
		TypeName:     a.TypeName,
		SeverityID:   a.SeverityID,
		SeverityName: a.SeverityName,
		StatusID:     a.StatusID,
		StatusName:   a.StatusName,
		Location:     a.Location,
		Description:  a.Description,
		Source:       a.Source,
		ReporterID:   reporter,
		AssignedToID: assignee,
		Payload:      a.Payload,
		IsDeleted:    a.IsDeleted,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}
