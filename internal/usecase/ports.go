package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/citygrid/appeals-service/internal/domain"
)

// CreateAppealInput is the validated input for creating an appeal.
type CreateAppealInput struct {
	TypeID       int64          `json:"type_id"`
	SeverityID   int64          `json:"severity_id"`
	StatusID     int64          `json:"status_id"`
	Location     string         `json:"location"`
	Description  string         `json:"description"`
	ReporterID   *uuid.UUID     `json:"reporter_id"`
	Source       string         `json:"source"`
	AssignedToID *uuid.UUID     `json:"assigned_to_id"`
	Payload      map[string]any `json:"payload"`
}

// UpdateAppealPatch is a partial update. Nil fields are left untouched.
type UpdateAppealPatch struct {
	StatusID     *int64         `json:"status_id"`
	AssignedToID *uuid.UUID     `json:"assigned_to_id"`
	Location     *string        `json:"location"`
	Description  *string        `json:"description"`
	Payload      map[string]any `json:"payload"`
	IsDeleted    *bool          `json:"is_deleted"`
}

// AppealRepository defines storage operations for appeals and their audit
// trail. Mutations are transactional: the row change and its history entries
// land together or not at all.
type AppealRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Appeal, error)
	List(ctx context.Context, offset, limit int, includeDeleted bool) ([]domain.Appeal, error)
	Insert(ctx context.Context, input CreateAppealInput, actor *uuid.UUID) (domain.Appeal, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateAppealPatch, actor *uuid.UUID) (domain.Appeal, error)
	GetHistory(ctx context.Context, appealID uuid.UUID) ([]domain.AppealHistory, error)
}

// Broadcaster fans a change event out to every connected notification
// channel. It never reports failure to the caller.
type Broadcaster interface {
	Broadcast(event domain.ChangeEvent)
}

// ReferenceRepository serves the immutable lookup tables.
type ReferenceRepository interface {
	ListTypes(ctx context.Context) ([]domain.AppealType, error)
	ListSeverities(ctx context.Context) ([]domain.SeverityLevel, error)
	ListStatuses(ctx context.Context) ([]domain.AppealStatus, error)
}

// CreateUserInput carries a plaintext password; it is hashed before it
// reaches the repository.
type CreateUserInput struct {
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Password string  `json:"password"`
	RoleIDs  []int64 `json:"role_ids"`
}

// RoleInput creates or replaces a role.
type RoleInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// PermissionInput creates a permission.
type PermissionInput struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// AuthRepository defines persistence for users, roles and permissions.
type AuthRepository interface {
	GetUser(ctx context.Context, id uuid.UUID) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput, passwordHash string) (domain.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input CreateUserInput, passwordHash string) (domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// GetUserByUsername also returns the stored password hash for
	// credential verification.
	GetUserByUsername(ctx context.Context, username string) (domain.User, string, error)

	GetRole(ctx context.Context, id int64) (domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, input RoleInput) (domain.Role, error)
	UpdateRole(ctx context.Context, id int64, input RoleInput) (domain.Role, error)
	DeleteRole(ctx context.Context, id int64) error

	ListPermissions(ctx context.Context) ([]domain.Permission, error)
	CreatePermission(ctx context.Context, input PermissionInput) (domain.Permission, error)
	DeletePermission(ctx context.Context, id int64) error
}

// CameraInput creates a camera record.
type CameraInput struct {
	Name        string `json:"name"`
	StreamURL   string `json:"stream_url"`
	PTZEnabled  bool   `json:"ptz_enabled"`
	PTZProtocol string `json:"ptz_protocol"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// CameraRepository defines persistence for camera hardware metadata.
type CameraRepository interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Camera, error)
	List(ctx context.Context, offset, limit int) ([]domain.Camera, error)
	Create(ctx context.Context, input CameraInput) (domain.Camera, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BuildingConfigInput creates a building config blob.
type BuildingConfigInput struct {
	BuildID   int64          `json:"id_build"`
	BuildName string         `json:"name_build"`
	Config    map[string]any `json:"config"`
}

// BuildingConfigPatch is a partial update. Nil fields are left untouched.
type BuildingConfigPatch struct {
	BuildID   *int64         `json:"id_build"`
	BuildName *string        `json:"name_build"`
	Config    map[string]any `json:"config"`
}

// BuildingConfigRepository defines persistence for building config blobs.
type BuildingConfigRepository interface {
	Get(ctx context.Context, id uuid.UUID) (domain.BuildingConfig, error)
	List(ctx context.Context, offset, limit int) ([]domain.BuildingConfig, error)
	Create(ctx context.Context, input BuildingConfigInput) (domain.BuildingConfig, error)
	Update(ctx context.Context, id uuid.UUID, patch BuildingConfigPatch) (domain.BuildingConfig, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImageRepository defines persistence for uploaded image metadata.
type ImageRepository interface {
	Create(ctx context.Context, filename, filepath string) (domain.Image, error)
	List(ctx context.Context) ([]domain.Image, error)
}

// HistoryExportRow is one flattened appeal_history row for export, joined
// with the owning appeal's type.
type HistoryExportRow struct {
	HistoryID   string
	AppealID    string
	EventTime   string
	EventType   string
	ChangedByID string
	FieldName   string
	OldValue    string
	NewValue    string
	Comment     string
	TypeID      int64
	TypeName    string
}

// ExportRepository reads flattened rows for spreadsheet export.
type ExportRepository interface {
	ListHistoryRows(ctx context.Context) ([]HistoryExportRow, error)
	ListAppealRows(ctx context.Context) ([]domain.Appeal, error)
}
