package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/application/usecase"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// fakeRoleRepo es un RoleRepository en memoria.
type fakeRoleRepo struct {
	roles       map[string]*entity.Role
	permissions map[string][]*entity.RolePermission // roleID → permisos
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles:       map[string]*entity.Role{},
		permissions: map[string][]*entity.RolePermission{},
	}
}

func (f *fakeRoleRepo) Create(role *entity.Role, permissions []*entity.RolePermission) error {
	cp := *role
	f.roles[role.ID] = &cp
	f.permissions[role.ID] = permissions
	return nil
}

func (f *fakeRoleRepo) GetByID(id string) (*entity.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoleRepo) GetByName(name string) (*entity.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRoleRepo) Update(role *entity.Role) error {
	cp := *role
	f.roles[role.ID] = &cp
	return nil
}

func (f *fakeRoleRepo) List() ([]*entity.Role, error) {
	var out []*entity.Role
	for _, r := range f.roles {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRoleRepo) Delete(id string) error {
	delete(f.roles, id)
	delete(f.permissions, id)
	return nil
}

func (f *fakeRoleRepo) ListPermissions(roleID string) ([]*entity.RolePermission, error) {
	return f.permissions[roleID], nil
}

func (f *fakeRoleRepo) ReplacePermissions(roleID string, permissions []*entity.RolePermission) error {
	f.permissions[roleID] = permissions
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests HasModuleAccess
// ──────────────────────────────────────────────────────────────────────────────

// El rol admin tiene paso libre a todos los módulos sin consultar la matriz.
func TestHasModuleAccess_AdminSiemprePasa(t *testing.T) {
	uc := usecase.NewRoleUseCase(newFakeRoleRepo())

	for _, module := range entity.Modules {
		ok, err := uc.HasModuleAccess(entity.RoleAdmin, module)
		require.NoError(t, err)
		assert.True(t, ok, "admin debe tener acceso al módulo %s", module)
	}
}

func TestHasModuleAccess_ConsultaLaMatriz(t *testing.T) {
	repo := newFakeRoleRepo()
	require.NoError(t, repo.Create(
		&entity.Role{ID: "r1", Name: "repartidor"},
		[]*entity.RolePermission{
			{RoleID: "r1", Module: "sales", HasAccess: true},
			{RoleID: "r1", Module: "users", HasAccess: false},
		},
	))
	uc := usecase.NewRoleUseCase(repo)

	ok, err := uc.HasModuleAccess("repartidor", "sales")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.HasModuleAccess("repartidor", "users")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.HasModuleAccess("repartidor", "reports")
	require.NoError(t, err)
	assert.False(t, ok, "módulo fuera de la matriz se niega por defecto")
}

func TestHasModuleAccess_RolInexistenteSeNiega(t *testing.T) {
	uc := usecase.NewRoleUseCase(newFakeRoleRepo())

	ok, err := uc.HasModuleAccess("rol-fantasma", "sales")
	require.NoError(t, err)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create / Delete
// ──────────────────────────────────────────────────────────────────────────────

// Un rol nuevo nace con una tupla por módulo, todas con acceso en falso.
func TestCreateRole_NaceConTodosLosPermisosEnFalso(t *testing.T) {
	repo := newFakeRoleRepo()
	uc := usecase.NewRoleUseCase(repo)

	out, err := uc.Create(dto.CreateRoleRequest{Name: "repartidor", Description: "reparte pedidos"})
	require.NoError(t, err)

	require.Len(t, out.Permissions, len(entity.Modules))
	for _, p := range out.Permissions {
		assert.False(t, p.HasAccess, "el módulo %s debe nacer sin acceso", p.Module)
		assert.False(t, p.MobileVisible)
	}
}

func TestCreateRole_NombreDeSistemaProhibido(t *testing.T) {
	uc := usecase.NewRoleUseCase(newFakeRoleRepo())

	_, err := uc.Create(dto.CreateRoleRequest{Name: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDeleteRole_DeSistemaNoSeBorra(t *testing.T) {
	repo := newFakeRoleRepo()
	require.NoError(t, repo.Create(&entity.Role{ID: "r-admin", Name: entity.RoleAdmin, System: true}, nil))
	uc := usecase.NewRoleUseCase(repo)

	err := uc.Delete("r-admin")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// UpdatePermissions reemplaza el set completo: los módulos ausentes del
// payload quedan sin acceso, no conservan el valor anterior.
func TestUpdatePermissions_ReemplazoTotal(t *testing.T) {
	repo := newFakeRoleRepo()
	require.NoError(t, repo.Create(
		&entity.Role{ID: "r1", Name: "repartidor"},
		[]*entity.RolePermission{{RoleID: "r1", Module: "users", HasAccess: true}},
	))
	uc := usecase.NewRoleUseCase(repo)

	out, err := uc.UpdatePermissions("r1", dto.UpdatePermissionsRequest{
		Permissions: map[string]dto.PermissionValue{
			"sales": {HasAccess: true, MobileVisible: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Permissions, len(entity.Modules))

	byModule := map[string]dto.RolePermissionResponse{}
	for _, p := range out.Permissions {
		byModule[p.Module] = p
	}
	assert.True(t, byModule["sales"].HasAccess)
	assert.True(t, byModule["sales"].MobileVisible)
	assert.False(t, byModule["users"].HasAccess, "el acceso previo a users no sobrevive al reemplazo")
}
