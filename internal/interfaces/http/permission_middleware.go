package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para
// verificar permisos por módulo. Lo implementa *usecase.RoleUseCase; el uso
// de interfaz evita el import circular.
type permissionChecker interface {
	HasModuleAccess(roleName, module string) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que verifica si el rol del
// token JWT tiene acceso al módulo. Debe usarse DESPUÉS de AuthMiddleware
// (necesita LocalRole).
//
// Comportamiento:
//   - 403 Forbidden → el rol no tiene acceso al módulo.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay rol en el contexto, responde 401 (el AuthMiddleware debería haberlo puesto).
func RequirePermission(module string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "rol no encontrado en el token",
			})
		}

		allowed, err := checker.HasModuleAccess(role, module)
		if err != nil {
			// Fallo de infraestructura: no confundirlo con una denegación.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "el rol '" + role + "' no tiene acceso al módulo '" + module + "'",
			})
		}

		return c.Next()
	}
}
