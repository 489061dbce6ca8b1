package production

import (
	"context"

	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// TxRunner ejecuta el completado de un lote dentro de una transacción:
// cambio de estado, empaques, incrementos de inventario y deducción de
// materia prima comparten commit o rollback.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		packRepo repository.BatchPackagingRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
		recipeRepo repository.RecipeRepository,
		rawRepo repository.RawMaterialRepository,
	) error) error
}
