package repository

import "github.com/jmorales-dev/granolapp-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
	Deactivate(id string) error
}

// RoleRepository define el puerto de persistencia para Role y sus permisos.
type RoleRepository interface {
	Create(role *entity.Role, permissions []*entity.RolePermission) error
	GetByID(id string) (*entity.Role, error)
	GetByName(name string) (*entity.Role, error)
	Update(role *entity.Role) error
	List() ([]*entity.Role, error)
	Delete(id string) error

	ListPermissions(roleID string) ([]*entity.RolePermission, error)
	// ReplacePermissions sustituye el set completo de permisos del rol en una
	// sola transacción (delete + insert).
	ReplacePermissions(roleID string, permissions []*entity.RolePermission) error
}

// SettingRepository define el puerto para la configuración clave/valor del negocio.
type SettingRepository interface {
	Get(key string) (*entity.Setting, error)
	Set(setting *entity.Setting) error
	List() ([]*entity.Setting, error)
}
