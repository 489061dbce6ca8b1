package dto

import (
	"encoding/json"
	"time"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest body para crear usuarios (solo admin).
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// UpdateUserRequest body para PUT /api/users/:id.
type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// UserResponse representación JSON de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse convierte la entidad.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

// CreateRoleRequest body para POST /api/roles.
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PermissionValue es el valor de permiso de un módulo. Históricamente el
// payload fue un booleano plano (solo acceso web); hoy es la estructura
// etiquetada. UnmarshalJSON hace el upcast único de los booleanos legados:
// true/false se interpreta como {has_access, mobile_dashboard_visible:false}.
type PermissionValue struct {
	HasAccess     bool `json:"has_access"`
	MobileVisible bool `json:"mobile_dashboard_visible"`
}

// UnmarshalJSON acepta tanto el booleano legado como el objeto etiquetado.
func (p *PermissionValue) UnmarshalJSON(data []byte) error {
	var legacy bool
	if err := json.Unmarshal(data, &legacy); err == nil {
		p.HasAccess = legacy
		p.MobileVisible = false
		return nil
	}
	type tagged PermissionValue
	var t tagged
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*p = PermissionValue(t)
	return nil
}

// UpdatePermissionsRequest body para PUT /api/roles/:id/permissions:
// el set completo de permisos por módulo (reemplazo total, no parche).
type UpdatePermissionsRequest struct {
	Permissions map[string]PermissionValue `json:"permissions"`
}

// RolePermissionResponse una tupla de permiso.
type RolePermissionResponse struct {
	Module        string `json:"module"`
	HasAccess     bool   `json:"has_access"`
	MobileVisible bool   `json:"mobile_dashboard_visible"`
}

// RoleResponse representación JSON de un rol con sus permisos.
type RoleResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	System      bool                     `json:"system"`
	Permissions []RolePermissionResponse `json:"permissions,omitempty"`
}

// NewRoleResponse convierte la entidad con sus permisos.
func NewRoleResponse(r *entity.Role, permissions []*entity.RolePermission) *RoleResponse {
	if r == nil {
		return nil
	}
	resp := &RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, System: r.System}
	for _, p := range permissions {
		resp.Permissions = append(resp.Permissions, RolePermissionResponse{
			Module:        p.Module,
			HasAccess:     p.HasAccess,
			MobileVisible: p.MobileVisible,
		})
	}
	return resp
}

// SettingRequest body para PUT /api/settings/:key.
type SettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse un par clave/valor de configuración.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSettingResponse convierte la entidad.
func NewSettingResponse(s *entity.Setting) *SettingResponse {
	if s == nil {
		return nil
	}
	return &SettingResponse{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}
}
