package domain

import (
	"time"

	"github.com/google/uuid"
)

// Camera is hardware metadata for one video source.
type Camera struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	StreamURL   string    `json:"stream_url"`
	PTZEnabled  bool      `json:"ptz_enabled"`
	PTZProtocol string    `json:"ptz_protocol,omitempty"`
	Username    string    `json:"username,omitempty"`
	Password    string    `json:"password,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
