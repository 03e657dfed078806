package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Appeal struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TicketNumber int64     `json:"ticket_number" gorm:"autoIncrement;uniqueIndex;not null"`

	TypeID     int64 `json:"type_id" gorm:"not null"`
	SeverityID int64 `json:"severity_id" gorm:"not null"`
	StatusID   int64 `json:"status_id" gorm:"not null"`

	Type     AppealType    `json:"-" gorm:"foreignKey:TypeID"`
	Severity SeverityLevel `json:"-" gorm:"foreignKey:SeverityID"`
	Status   AppealStatus  `json:"-" gorm:"foreignKey:StatusID"`

	Location    string `json:"location" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`
	Source      string `json:"source" gorm:"type:varchar(50);not null"`

	ReporterID   *uuid.UUID `json:"reporter_id" gorm:"type:uuid"`
	AssignedToID *uuid.UUID `json:"assigned_to_id" gorm:"type:uuid"`
	Reporter     *User      `json:"-" gorm:"foreignKey:ReporterID;constraint:OnDelete:SET NULL;"`
	AssignedTo   *User      `json:"-" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL;"`

	Payload   datatypes.JSONMap `json:"payload" gorm:"column:metadata"`
	IsDeleted bool              `json:"is_deleted" gorm:"not null;default:false;index"`

	CreatedAt time.Time `json:"created_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// AppealHistory rows are append-only. The foreign key deliberately does not
// cascade on the application side: history outlives soft deletes.
type AppealHistory struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	AppealID    uuid.UUID         `json:"appeal_id" gorm:"type:uuid;index;not null"`
	EventTime   time.Time         `json:"event_time" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	EventType   string            `json:"event_type" gorm:"type:varchar(50);not null"`
	ChangedByID *uuid.UUID        `json:"changed_by_id" gorm:"type:uuid"`
	FieldName   string            `json:"field_name" gorm:"type:varchar(100)"`
	OldValue    string            `json:"old_value" gorm:"type:text"`
	NewValue    string            `json:"new_value" gorm:"type:text"`
	Comment     string            `json:"comment" gorm:"type:text"`
	Payload     datatypes.JSONMap `json:"payload" gorm:"column:metadata"`
}

type Attachment struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	AppealID     uuid.UUID  `json:"appeal_id" gorm:"type:uuid;index;not null"`
	Appeal       Appeal     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	UploadedByID *uuid.UUID `json:"uploaded_by_id" gorm:"type:uuid"`
	FilePath     string     `json:"file_path" gorm:"type:varchar(1024);not null"`
	FileName     string     `json:"file_name" gorm:"type:varchar(255)"`
	FileSize     int64      `json:"file_size"`
	ContentType  string     `json:"content_type" gorm:"type:varchar(100)"`
	UploadedAt   time.Time  `json:"uploaded_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
