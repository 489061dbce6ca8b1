package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia para RawMaterial.
// Las mutaciones de stock son UPDATEs condicionales de una sola sentencia
// (stock + delta >= 0) para no depender de read-modify-write sin bloqueo.
type RawMaterialRepository interface {
	Create(material *entity.RawMaterial) error
	GetByID(id string) (*entity.RawMaterial, error)
	Update(material *entity.RawMaterial) error
	List(includeInactive bool) ([]*entity.RawMaterial, error)
	Deactivate(id string) error

	// ApplyDelta suma delta al stock de forma atómica y devuelve la fila
	// actualizada. Devuelve nil (sin error) si la condición stock+delta >= 0
	// no se cumple.
	ApplyDelta(id string, delta decimal.Decimal) (*entity.RawMaterial, error)

	// DeductIfAvailable descuenta qty solo si hay stock suficiente.
	// Devuelve false si no se descontó por falta de stock.
	DeductIfAvailable(id string, qty decimal.Decimal) (bool, error)
}
