package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/citygrid/appeals-service/internal/domain"
)

// AuthUsecase covers user/role/permission administration. Credential
// verification itself lives in service.TokenService.
type AuthUsecase struct {
	repo AuthRepository
}

func NewAuthUsecase(repo AuthRepository) *AuthUsecase {
	return &AuthUsecase{repo: repo}
}

func (uc *AuthUsecase) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return uc.repo.GetUser(ctx, id)
}

func (uc *AuthUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.repo.ListUsers(ctx)
}

func (uc *AuthUsecase) CreateUser(ctx context.Context, input CreateUserInput) (domain.User, error) {
	if input.Username == "" {
		return domain.User{}, domain.ValidationError{Reason: "username is required"}
	}
	if input.Password == "" {
		return domain.User{}, domain.ValidationError{Reason: "password is required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	return uc.repo.CreateUser(ctx, input, string(hash))
}

func (uc *AuthUsecase) UpdateUser(ctx context.Context, id uuid.UUID, input CreateUserInput) (domain.User, error) {
	var hash string
	if input.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		hash = string(h)
	}
	return uc.repo.UpdateUser(ctx, id, input, hash)
}

func (uc *AuthUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return uc.repo.DeleteUser(ctx, id)
}

func (uc *AuthUsecase) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	return uc.repo.GetRole(ctx, id)
}

func (uc *AuthUsecase) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return uc.repo.ListRoles(ctx)
}

func (uc *AuthUsecase) CreateRole(ctx context.Context, input RoleInput) (domain.Role, error) {
	if input.Name == "" {
		return domain.Role{}, domain.ValidationError{Reason: "name is required"}
	}
	return uc.repo.CreateRole(ctx, input)
}

func (uc *AuthUsecase) UpdateRole(ctx context.Context, id int64, input RoleInput) (domain.Role, error) {
	return uc.repo.UpdateRole(ctx, id, input)
}

func (uc *AuthUsecase) DeleteRole(ctx context.Context, id int64) error {
	return uc.repo.DeleteRole(ctx, id)
}

func (uc *AuthUsecase) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return uc.repo.ListPermissions(ctx)
}

func (uc *AuthUsecase) CreatePermission(ctx context.Context, input PermissionInput) (domain.Permission, error) {
	if input.Code == "" {
		return domain.Permission{}, domain.ValidationError{Reason: "code is required"}
	}
	return uc.repo.CreatePermission(ctx, input)
}

func (uc *AuthUsecase) DeletePermission(ctx context.Context, id int64) error {
	return uc.repo.DeletePermission(ctx, id)
}
