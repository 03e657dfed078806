package models

import (
	"time"

	"github.com/google/uuid"
)

type Permission struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Code        string `json:"code" gorm:"type:text;uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
}

type Role struct {
	ID          int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string       `json:"name" gorm:"type:text;uniqueIndex;not null"`
	Description string       `json:"description" gorm:"type:text"`
	Permissions []Permission `json:"permissions" gorm:"many2many:role_permissions;"`
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(200)"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Phone        string    `json:"phone" gorm:"type:varchar(50)"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"`
	Roles        []Role    `json:"roles" gorm:"many2many:user_roles;"`
	CreatedAt    time.Time `json:"created_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}
