package repository

import (
	"time"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// InventoryRepository define el puerto para el stock materializado por
// (producto, bodega). Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	Get(productID, warehouseID string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Si la fila no existe
	// devuelve un item con cantidad cero sin persistirlo.
	GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error)
	Upsert(item *entity.InventoryItem) error
	ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error)
	ListByProduct(productID string) ([]*entity.InventoryItem, error)
	// Delete elimina la fila solo si su cantidad es cero.
	Delete(productID, warehouseID string) error
}

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. Solo inserta y lee: las filas son inmutables.
type MovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByProduct(productID, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByRef(refType, refID string) ([]*entity.InventoryMovement, error)
}
