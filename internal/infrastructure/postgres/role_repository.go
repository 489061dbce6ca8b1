package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de RoleRepository sobre PostgreSQL. Usa el pool
// directamente porque Create y ReplacePermissions abren su propia transacción
// (rol + permisos comparten commit).
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository construye el adaptador sobre el pool.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// Create persiste el rol y su set inicial de permisos en una transacción.
func (r *RoleRepo) Create(role *entity.Role, permissions []*entity.RolePermission) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO roles (id, name, description, system, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		role.ID, role.Name, role.Description, role.System, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	if err := insertPermissions(ctx, tx, role.ID, permissions); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(id string) (*entity.Role, error) {
	return r.getOne(`SELECT id, name, description, system, created_at, updated_at FROM roles WHERE id = $1`, id)
}

// GetByName obtiene un rol por nombre.
func (r *RoleRepo) GetByName(name string) (*entity.Role, error) {
	return r.getOne(`SELECT id, name, description, system, created_at, updated_at FROM roles WHERE name = $1`, name)
}

func (r *RoleRepo) getOne(query string, arg any) (*entity.Role, error) {
	var role entity.Role
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&role.ID, &role.Name, &role.Description, &role.System, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// Update actualiza nombre y descripción del rol.
func (r *RoleRepo) Update(role *entity.Role) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE roles SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		role.ID, role.Name, role.Description, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// List lista todos los roles.
func (r *RoleRepo) List() ([]*entity.Role, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, name, description, system, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.System, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Delete elimina el rol y sus permisos.
func (r *RoleRepo) Delete(id string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("delete role permissions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListPermissions lista los permisos por módulo de un rol.
func (r *RoleRepo) ListPermissions(roleID string) ([]*entity.RolePermission, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT role_id, module, has_access, mobile_dashboard_visible
		 FROM role_permissions WHERE role_id = $1 ORDER BY module`, roleID)
	if err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.RolePermission
	for rows.Next() {
		var p entity.RolePermission
		if err := rows.Scan(&p.RoleID, &p.Module, &p.HasAccess, &p.MobileVisible); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ReplacePermissions sustituye el set completo de permisos del rol en una
// sola transacción (delete + insert).
func (r *RoleRepo) ReplacePermissions(roleID string, permissions []*entity.RolePermission) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("delete role permissions: %w", err)
	}
	if err := insertPermissions(ctx, tx, roleID, permissions); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertPermissions(ctx context.Context, tx pgx.Tx, roleID string, permissions []*entity.RolePermission) error {
	for _, p := range permissions {
		_, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, module, has_access, mobile_dashboard_visible)
			 VALUES ($1, $2, $3, $4)`,
			roleID, p.Module, p.HasAccess, p.MobileVisible,
		)
		if err != nil {
			return fmt.Errorf("insert role permission: %w", err)
		}
	}
	return nil
}
