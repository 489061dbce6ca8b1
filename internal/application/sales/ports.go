package sales

import (
	"context"

	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// TxRunner transacciones de ventas y consignaciones.
type TxRunner interface {
	// RunSale: la venta y su descuento de stock comparten commit o rollback.
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.MovementRepository,
	) error) error

	// RunConsignment: la consignación y su visita inicial (o el borrado en
	// cascada visitas-primero) comparten commit o rollback.
	RunConsignment(ctx context.Context, fn func(
		consRepo repository.ConsignmentRepository,
		visitRepo repository.ConsignmentVisitRepository,
	) error) error
}
