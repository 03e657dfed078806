package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/citygrid/appeals-service/internal/domain"
	"github.com/citygrid/appeals-service/internal/infra/database/models"
	"github.com/citygrid/appeals-service/internal/usecase"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// --- users ---

func (r *AuthRepository) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		First(&record, "id = ?", id).Error
	if err != nil {
		return domain.User{}, translateAuthErr(err, "user")
	}
	return toDomainUser(record), nil
}

func (r *AuthRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var records []models.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(records))
	for _, record := range records {
		users = append(users, toDomainUser(record))
	}
	return users, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, input usecase.CreateUserInput, passwordHash string) (domain.User, error) {
	record := models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(input.RoleIDs) > 0 {
			if err := tx.Find(&record.Roles, input.RoleIDs).Error; err != nil {
				return err
			}
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return domain.User{}, translateAuthErr(err, "user")
	}

	return r.GetUser(ctx, record.ID)
}

func (r *AuthRepository) UpdateUser(ctx context.Context, id uuid.UUID, input usecase.CreateUserInput, passwordHash string) (domain.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.User
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return err
		}

		fields := map[string]any{
			"username":  input.Username,
			"full_name": input.FullName,
			"email":     input.Email,
			"phone":     input.Phone,
		}
		if passwordHash != "" {
			fields["password_hash"] = passwordHash
		}
		if err := tx.Model(&record).Updates(fields).Error; err != nil {
			return err
		}

		if input.RoleIDs != nil {
			var roles []models.Role
			if err := tx.Find(&roles, input.RoleIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&record).Association("Roles").Replace(roles); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.User{}, translateAuthErr(err, "user")
	}

	return r.GetUser(ctx, id)
}

func (r *AuthRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r *AuthRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, string, error) {
	var record models.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		First(&record, "username = ?", username).Error
	if err != nil {
		return domain.User{}, "", translateAuthErr(err, "user")
	}
	return toDomainUser(record), record.PasswordHash, nil
}

// --- roles ---

func (r *AuthRepository) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	var record models.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		First(&record, "id = ?", id).Error
	if err != nil {
		return domain.Role{}, translateAuthErr(err, "role")
	}
	return toDomainRole(record), nil
}

func (r *AuthRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	var records []models.Role
	if err := r.db.WithContext(ctx).Preload("Permissions").Find(&records).Error; err != nil {
		return nil, err
	}

	roles := make([]domain.Role, 0, len(records))
	for _, record := range records {
		roles = append(roles, toDomainRole(record))
	}
	return roles, nil
}

func (r *AuthRepository) CreateRole(ctx context.Context, input usecase.RoleInput) (domain.Role, error) {
	record := models.Role{
		Name:        input.Name,
		Description: input.Description,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(input.PermissionIDs) > 0 {
			if err := tx.Find(&record.Permissions, input.PermissionIDs).Error; err != nil {
				return err
			}
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return domain.Role{}, translateAuthErr(err, "role")
	}

	return r.GetRole(ctx, record.ID)
}

func (r *AuthRepository) UpdateRole(ctx context.Context, id int64, input usecase.RoleInput) (domain.Role, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.Role
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return err
		}

		fields := map[string]any{
			"name":        input.Name,
			"description": input.Description,
		}
		if err := tx.Model(&record).Updates(fields).Error; err != nil {
			return err
		}

		if input.PermissionIDs != nil {
			var perms []models.Permission
			if err := tx.Find(&perms, input.PermissionIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&record).Association("Permissions").Replace(perms); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Role{}, translateAuthErr(err, "role")
	}

	return r.GetRole(ctx, id)
}

func (r *AuthRepository) DeleteRole(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Role{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "role"}
	}
	return nil
}

// --- permissions ---

func (r *AuthRepository) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	var records []models.Permission
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	perms := make([]domain.Permission, 0, len(records))
	for _, record := range records {
		perms = append(perms, domain.Permission{
			ID:          record.ID,
			Code:        record.Code,
			Description: record.Description,
		})
	}
	return perms, nil
}

func (r *AuthRepository) CreatePermission(ctx context.Context, input usecase.PermissionInput) (domain.Permission, error) {
	record := models.Permission{
		Code:        input.Code,
		Description: input.Description,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Permission{}, translateAuthErr(err, "permission")
	}
	return domain.Permission{
		ID:          record.ID,
		Code:        record.Code,
		Description: record.Description,
	}, nil
}

func (r *AuthRepository) DeletePermission(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Permission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "permission"}
	}
	return nil
}

func toDomainUser(record models.User) domain.User {
	roles := make([]domain.Role, 0, len(record.Roles))
	for _, role := range record.Roles {
		roles = append(roles, toDomainRole(role))
	}
	return domain.User{
		ID:        record.ID,
		Username:  record.Username,
		FullName:  record.FullName,
		Email:     record.Email,
		Phone:     record.Phone,
		Roles:     roles,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func toDomainRole(record models.Role) domain.Role {
	perms := make([]domain.Permission, 0, len(record.Permissions))
	for _, perm := range record.Permissions {
		perms = append(perms, domain.Permission{
			ID:          perm.ID,
			Code:        perm.Code,
			Description: perm.Description,
		})
	}
	return domain.Role{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Permissions: perms,
	}
}

func translateAuthErr(err error, resource string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ValidationError{Reason: "duplicate value for unique field"}
	default:
		return err
	}
}
