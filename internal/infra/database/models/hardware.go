package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Camera struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	StreamURL   string    `json:"stream_url" gorm:"type:varchar(1024);not null"`
	PTZEnabled  bool      `json:"ptz_enabled" gorm:"not null;default:false"`
	PTZProtocol string    `json:"ptz_protocol" gorm:"type:varchar(50)"`
	Username    string    `json:"username" gorm:"type:varchar(100)"`
	Password    string    `json:"password" gorm:"type:varchar(100)"`
	CreatedAt   time.Time `json:"created_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type BuildingConfig struct {
	ID        uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	BuildID   int64             `json:"id_build" gorm:"not null;index"`
	BuildName string            `json:"name_build" gorm:"type:varchar(255);not null"`
	Config    datatypes.JSONMap `json:"config" gorm:"not null"`
	CreatedAt time.Time         `json:"created_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Image struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Filename   string    `json:"filename" gorm:"type:varchar(255);not null"`
	Filepath   string    `json:"filepath" gorm:"type:varchar(1024);not null"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
