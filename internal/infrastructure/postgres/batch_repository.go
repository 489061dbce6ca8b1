package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)
var _ repository.BatchPackagingRepository = (*BatchPackagingRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, code, recipe_id, production_date, produced_qty, total_cost, status, notes, created_by, created_at, updated_at`

// Create persiste un lote.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Code, batch.RecipeID, batch.ProductionDate, batch.ProducedQty,
		batch.TotalCost, batch.Status, batch.Notes, batch.CreatedBy, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	return r.getOne(`SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
}

// GetForUpdate obtiene un lote y bloquea su fila (SELECT FOR UPDATE) para que
// dos completados concurrentes no pasen ambos la validación de estado.
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	return r.getOne(`SELECT `+batchColumns+` FROM batches WHERE id = $1 FOR UPDATE`, id)
}

// GetByCode obtiene un lote por su código único.
func (r *BatchRepo) GetByCode(code string) (*entity.Batch, error) {
	return r.getOne(`SELECT `+batchColumns+` FROM batches WHERE code = $1`, code)
}

func (r *BatchRepo) getOne(query string, arg any) (*entity.Batch, error) {
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.Code, &b.RecipeID, &b.ProductionDate, &b.ProducedQty,
		&b.TotalCost, &b.Status, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// UpdateStatusIfOpen cambia el estado del lote con una sola sentencia
// condicional: solo aplica mientras el lote sigue abierto, así un completado
// confirmado por otra conexión nunca se pisa.
func (r *BatchRepo) UpdateStatusIfOpen(id, status string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE batches SET status = $2, updated_at = now()
		 WHERE id = $1 AND status IN ($3, $4)`,
		id, status, entity.BatchPlanned, entity.BatchInProgress)
	if err != nil {
		return false, fmt.Errorf("update batch status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Update actualiza los campos editables de un lote.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE batches SET production_date = $2, produced_qty = $3, notes = $4, updated_at = $5 WHERE id = $1`,
		batch.ID, batch.ProductionDate, batch.ProducedQty, batch.Notes, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// List lista lotes con filtros opcionales de estado y rango de fechas.
func (r *BatchRepo) List(status string, from, to *time.Time, limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + ` FROM batches
		WHERE ($1 = '' OR status = $1)
		  AND ($2::timestamptz IS NULL OR production_date >= $2)
		  AND ($3::timestamptz IS NULL OR production_date <= $3)
		ORDER BY production_date DESC, created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, status, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.Code, &b.RecipeID, &b.ProductionDate, &b.ProducedQty,
			&b.TotalCost, &b.Status, &b.Notes, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// DeleteIfNotCompleted elimina el lote salvo que esté completado. Los lotes
// completados son historia contable y la condición se evalúa en la misma
// sentencia que borra.
func (r *BatchRepo) DeleteIfNotCompleted(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM batches WHERE id = $1 AND status <> $2`, id, entity.BatchCompleted)
	if err != nil {
		return false, fmt.Errorf("delete batch: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// BatchPackagingRepo implementación de BatchPackagingRepository sobre PostgreSQL.
type BatchPackagingRepo struct {
	q Querier
}

// NewBatchPackagingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchPackagingRepository(q Querier) *BatchPackagingRepo {
	return &BatchPackagingRepo{q: q}
}

// Create persiste una línea de empaque.
func (r *BatchPackagingRepo) Create(packaging *entity.BatchPackaging) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO batch_packaging (id, batch_id, product_id, bag_type, bag_count, warehouse_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		packaging.ID, packaging.BatchID, packaging.ProductID, packaging.BagType,
		packaging.BagCount, packaging.WarehouseID, packaging.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch packaging: %w", err)
	}
	return nil
}

// ListByBatch lista las líneas de empaque de un lote.
func (r *BatchPackagingRepo) ListByBatch(batchID string) ([]*entity.BatchPackaging, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, batch_id, product_id, bag_type, bag_count, warehouse_id, created_at
		 FROM batch_packaging WHERE batch_id = $1 ORDER BY created_at`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch packaging: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchPackaging
	for rows.Next() {
		var p entity.BatchPackaging
		if err := rows.Scan(&p.ID, &p.BatchID, &p.ProductID, &p.BagType, &p.BagCount, &p.WarehouseID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch packaging: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountByBatch cuenta las líneas de empaque de un lote.
func (r *BatchPackagingRepo) CountByBatch(batchID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM batch_packaging WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count batch packaging: %w", err)
	}
	return count, nil
}
