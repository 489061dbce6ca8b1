package inventory

import (
	"time"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// Queries lecturas de inventario y borrado de filas vacías. Opera fuera de
// transacciones: solo lee datos ya commiteados.
type Queries struct {
	invRepo      repository.InventoryRepository
	movRepo      repository.MovementRepository
	transferRepo repository.TransferRepository
}

// NewQueries construye el lado de lectura del inventario.
func NewQueries(invRepo repository.InventoryRepository, movRepo repository.MovementRepository, transferRepo repository.TransferRepository) *Queries {
	return &Queries{invRepo: invRepo, movRepo: movRepo, transferRepo: transferRepo}
}

// StockByWarehouse lista el stock materializado de una bodega.
func (q *Queries) StockByWarehouse(warehouseID string) ([]*entity.InventoryItem, error) {
	return q.invRepo.ListByWarehouse(warehouseID)
}

// StockByProduct lista el stock de un producto en todas las bodegas.
func (q *Queries) StockByProduct(productID string) ([]*entity.InventoryItem, error) {
	return q.invRepo.ListByProduct(productID)
}

// DeleteItem borra la fila de inventario de (producto, bodega).
// Rechaza con ErrInvalidState si la cantidad es mayor que cero.
func (q *Queries) DeleteItem(productID, warehouseID string) error {
	item, err := q.invRepo.Get(productID, warehouseID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.Quantity.IsPositive() {
		return domain.ErrInvalidState
	}
	return q.invRepo.Delete(productID, warehouseID)
}

// Movements lista el libro de movimientos de un producto (opcionalmente
// filtrado por bodega y rango de fechas).
func (q *Queries) Movements(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	if productID == "" && warehouseID != "" {
		return q.movRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
	}
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return q.movRepo.ListByProduct(productID, warehouseID, from, to, limit, offset)
}

// MovementsByRef reconstruye los movimientos de una operación (p. ej. los dos
// lados de un traslado).
func (q *Queries) MovementsByRef(refType, refID string) ([]*entity.InventoryMovement, error) {
	return q.movRepo.ListByRef(refType, refID)
}

// Transfers lista traslados en un rango de fechas.
func (q *Queries) Transfers(from, to *time.Time, limit, offset int) ([]*entity.Transfer, error) {
	return q.transferRepo.List(from, to, limit, offset)
}
