package repository

import (
	"time"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para Batch.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para que dos
	// completados concurrentes del mismo lote no pasen ambos la validación de estado.
	GetForUpdate(id string) (*entity.Batch, error)
	GetByCode(code string) (*entity.Batch, error)
	// UpdateStatusIfOpen cambia el estado en una sola sentencia condicional:
	// solo aplica mientras el lote sigue planificado o en_proceso. Devuelve
	// false si la fila no existe o ya está en un estado terminal.
	UpdateStatusIfOpen(id, status string) (bool, error)
	Update(batch *entity.Batch) error
	List(status string, from, to *time.Time, limit, offset int) ([]*entity.Batch, error)
	// DeleteIfNotCompleted elimina el lote salvo que esté completado.
	// Devuelve false si no se borró ninguna fila.
	DeleteIfNotCompleted(id string) (bool, error)
}

// BatchPackagingRepository define el puerto para las líneas de empaque de un lote.
type BatchPackagingRepository interface {
	Create(packaging *entity.BatchPackaging) error
	ListByBatch(batchID string) ([]*entity.BatchPackaging, error)
	CountByBatch(batchID string) (int, error)
}
