package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
)

// El payload de permisos aceptó históricamente booleanos planos por módulo;
// el decode debe hacer el upcast sin romper a los clientes viejos.
func TestPermissionValue_BooleanoLegadoSeUpcastea(t *testing.T) {
	var p dto.PermissionValue
	require.NoError(t, json.Unmarshal([]byte(`true`), &p))
	assert.True(t, p.HasAccess)
	assert.False(t, p.MobileVisible, "el booleano legado nunca otorga visibilidad móvil")

	require.NoError(t, json.Unmarshal([]byte(`false`), &p))
	assert.False(t, p.HasAccess)
	assert.False(t, p.MobileVisible)
}

func TestPermissionValue_ObjetoEtiquetado(t *testing.T) {
	var p dto.PermissionValue
	require.NoError(t, json.Unmarshal([]byte(`{"has_access": true, "mobile_dashboard_visible": true}`), &p))
	assert.True(t, p.HasAccess)
	assert.True(t, p.MobileVisible)
}

func TestPermissionValue_PayloadInvalido(t *testing.T) {
	var p dto.PermissionValue
	err := json.Unmarshal([]byte(`"si"`), &p)
	assert.Error(t, err, "un string no es ni booleano legado ni objeto")
}

// Un mismo request puede mezclar módulos en formato legado y etiquetado.
func TestUpdatePermissionsRequest_FormatosMezclados(t *testing.T) {
	payload := []byte(`{
		"permissions": {
			"sales":     true,
			"inventory": {"has_access": true, "mobile_dashboard_visible": true},
			"users":     false
		}
	}`)

	var req dto.UpdatePermissionsRequest
	require.NoError(t, json.Unmarshal(payload, &req))

	assert.True(t, req.Permissions["sales"].HasAccess)
	assert.False(t, req.Permissions["sales"].MobileVisible)
	assert.True(t, req.Permissions["inventory"].HasAccess)
	assert.True(t, req.Permissions["inventory"].MobileVisible)
	assert.False(t, req.Permissions["users"].HasAccess)
}
