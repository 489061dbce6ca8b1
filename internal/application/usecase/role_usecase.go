package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// RoleUseCase administración de roles y su matriz de permisos por módulo.
// Los roles de sistema no pueden borrarse ni renombrarse.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// Create crea un rol nuevo con todos los permisos en falso.
func (uc *RoleUseCase) Create(in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if entity.IsSystemRole(in.Name) {
		return nil, domain.ErrDuplicate
	}
	existing, _ := uc.repo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		System:      false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	permissions := make([]*entity.RolePermission, 0, len(entity.Modules))
	for _, module := range entity.Modules {
		permissions = append(permissions, &entity.RolePermission{
			RoleID: role.ID,
			Module: module,
		})
	}
	if err := uc.repo.Create(role, permissions); err != nil {
		return nil, err
	}
	return dto.NewRoleResponse(role, permissions), nil
}

// GetByID obtiene un rol con sus permisos.
func (uc *RoleUseCase) GetByID(id string) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	permissions, err := uc.repo.ListPermissions(id)
	if err != nil {
		return nil, err
	}
	return dto.NewRoleResponse(role, permissions), nil
}

// Update renombra o re-describe un rol. Renombrar un rol de sistema está
// prohibido.
func (uc *RoleUseCase) Update(id string, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" && in.Name != role.Name {
		if role.System {
			return nil, domain.ErrForbidden
		}
		role.Name = in.Name
	}
	role.Description = in.Description
	role.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(role); err != nil {
		return nil, err
	}
	permissions, err := uc.repo.ListPermissions(id)
	if err != nil {
		return nil, err
	}
	return dto.NewRoleResponse(role, permissions), nil
}

// UpdatePermissions reemplaza la matriz completa de permisos del rol. El
// payload acepta booleanos legados por módulo; el upcast ocurre al decodificar.
func (uc *RoleUseCase) UpdatePermissions(id string, in dto.UpdatePermissionsRequest) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	permissions := make([]*entity.RolePermission, 0, len(entity.Modules))
	for _, module := range entity.Modules {
		value := in.Permissions[module]
		permissions = append(permissions, &entity.RolePermission{
			RoleID:        id,
			Module:        module,
			HasAccess:     value.HasAccess,
			MobileVisible: value.MobileVisible,
		})
	}
	if err := uc.repo.ReplacePermissions(id, permissions); err != nil {
		return nil, err
	}
	return dto.NewRoleResponse(role, permissions), nil
}

// List lista todos los roles con sus permisos.
func (uc *RoleUseCase) List() ([]dto.RoleResponse, error) {
	roles, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		permissions, err := uc.repo.ListPermissions(role.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *dto.NewRoleResponse(role, permissions))
	}
	return items, nil
}

// Delete elimina un rol. Los roles de sistema no se borran.
func (uc *RoleUseCase) Delete(id string) error {
	role, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	if role.System {
		return domain.ErrInvalidState
	}
	return uc.repo.Delete(id)
}

// HasModuleAccess reporta si el rol tiene acceso al módulo. El rol admin
// siempre tiene acceso.
func (uc *RoleUseCase) HasModuleAccess(roleName, module string) (bool, error) {
	if roleName == entity.RoleAdmin {
		return true, nil
	}
	role, err := uc.repo.GetByName(roleName)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}
	permissions, err := uc.repo.ListPermissions(role.ID)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if p.Module == module {
			return p.HasAccess, nil
		}
	}
	return false, nil
}
