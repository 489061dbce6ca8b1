package entity

import "time"

// Roles de sistema: no pueden borrarse ni renombrarse.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleSalesperson = "salesperson"
	RoleCashier     = "cashier"
)

// Módulos de la aplicación sobre los que se otorgan permisos.
var Modules = []string{
	"products", "inventory", "sales", "consignments", "production",
	"raw_materials", "transfers", "expenses", "reports", "customers",
	"users", "settings",
}

// IsSystemRole reporta si el nombre corresponde a un rol de sistema.
func IsSystemRole(name string) bool {
	switch name {
	case RoleAdmin, RoleManager, RoleSalesperson, RoleCashier:
		return true
	}
	return false
}

// Role agrupa permisos por módulo. Los roles nuevos nacen con todos
// los permisos en falso.
type Role struct {
	ID          string
	Name        string
	Description string
	System      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RolePermission es la tupla (módulo, acceso web, visibilidad en el
// dashboard móvil) de un rol.
type RolePermission struct {
	RoleID        string
	Module        string
	HasAccess     bool
	MobileVisible bool
}
