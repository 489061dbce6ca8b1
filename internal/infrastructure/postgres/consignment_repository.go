package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.ConsignmentRepository = (*ConsignmentRepo)(nil)
var _ repository.ConsignmentVisitRepository = (*ConsignmentVisitRepo)(nil)

// ConsignmentRepo implementación de ConsignmentRepository sobre PostgreSQL.
type ConsignmentRepo struct {
	q Querier
}

// NewConsignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsignmentRepository(q Querier) *ConsignmentRepo {
	return &ConsignmentRepo{q: q}
}

const consignmentColumns = `id, sale_id, customer_id, product_id, quantity, delivery_date,
	payment_status, amount_paid, next_visit_date, notes, created_at, updated_at`

// Create persiste una consignación.
func (r *ConsignmentRepo) Create(consignment *entity.Consignment) error {
	query := `
		INSERT INTO consignments (` + consignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		consignment.ID, consignment.SaleID, consignment.CustomerID, consignment.ProductID,
		consignment.Quantity, consignment.DeliveryDate, consignment.PaymentStatus,
		consignment.AmountPaid, consignment.NextVisitDate, consignment.Notes,
		consignment.CreatedAt, consignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consignment: %w", err)
	}
	return nil
}

// GetByID obtiene una consignación por ID.
func (r *ConsignmentRepo) GetByID(id string) (*entity.Consignment, error) {
	return r.getOne(`SELECT `+consignmentColumns+` FROM consignments WHERE id = $1`, id)
}

// GetForUpdate obtiene una consignación y bloquea su fila (SELECT FOR UPDATE)
// para que dos cobros concurrentes no pierdan un abono.
func (r *ConsignmentRepo) GetForUpdate(id string) (*entity.Consignment, error) {
	return r.getOne(`SELECT `+consignmentColumns+` FROM consignments WHERE id = $1 FOR UPDATE`, id)
}

func (r *ConsignmentRepo) getOne(query string, arg any) (*entity.Consignment, error) {
	var c entity.Consignment
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.SaleID, &c.CustomerID, &c.ProductID, &c.Quantity, &c.DeliveryDate,
		&c.PaymentStatus, &c.AmountPaid, &c.NextVisitDate, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consignment: %w", err)
	}
	return &c, nil
}

// Update actualiza estado de pago, abonos y próxima visita.
func (r *ConsignmentRepo) Update(consignment *entity.Consignment) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE consignments SET payment_status = $2, amount_paid = $3, next_visit_date = $4, notes = $5, updated_at = $6
		 WHERE id = $1`,
		consignment.ID, consignment.PaymentStatus, consignment.AmountPaid,
		consignment.NextVisitDate, consignment.Notes, consignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update consignment: %w", err)
	}
	return nil
}

// List lista consignaciones, opcionalmente filtradas por estado de pago.
func (r *ConsignmentRepo) List(paymentStatus string, limit, offset int) ([]*entity.Consignment, error) {
	query := `
		SELECT ` + consignmentColumns + ` FROM consignments
		WHERE ($1 = '' OR payment_status = $1)
		ORDER BY next_visit_date LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, paymentStatus, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list consignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consignment
	for rows.Next() {
		var c entity.Consignment
		if err := rows.Scan(&c.ID, &c.SaleID, &c.CustomerID, &c.ProductID, &c.Quantity, &c.DeliveryDate,
			&c.PaymentStatus, &c.AmountPaid, &c.NextVisitDate, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan consignment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una consignación. Las visitas deben borrarse antes.
func (r *ConsignmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM consignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consignment: %w", err)
	}
	return nil
}

// ConsignmentVisitRepo implementación de ConsignmentVisitRepository sobre PostgreSQL.
type ConsignmentVisitRepo struct {
	q Querier
}

// NewConsignmentVisitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsignmentVisitRepository(q Querier) *ConsignmentVisitRepo {
	return &ConsignmentVisitRepo{q: q}
}

// Create persiste una visita.
func (r *ConsignmentVisitRepo) Create(visit *entity.ConsignmentVisit) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO consignment_visits (id, consignment_id, visit_date, type, status, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		visit.ID, visit.ConsignmentID, visit.VisitDate, visit.Type, visit.Status, visit.Notes, visit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consignment visit: %w", err)
	}
	return nil
}

// GetByID obtiene una visita por ID.
func (r *ConsignmentVisitRepo) GetByID(id string) (*entity.ConsignmentVisit, error) {
	var v entity.ConsignmentVisit
	err := r.q.QueryRow(context.Background(),
		`SELECT id, consignment_id, visit_date, type, status, notes, created_at
		 FROM consignment_visits WHERE id = $1`, id,
	).Scan(&v.ID, &v.ConsignmentID, &v.VisitDate, &v.Type, &v.Status, &v.Notes, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consignment visit: %w", err)
	}
	return &v, nil
}

// Update actualiza fecha, tipo, estado y notas de una visita.
func (r *ConsignmentVisitRepo) Update(visit *entity.ConsignmentVisit) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE consignment_visits SET visit_date = $2, type = $3, status = $4, notes = $5 WHERE id = $1`,
		visit.ID, visit.VisitDate, visit.Type, visit.Status, visit.Notes,
	)
	if err != nil {
		return fmt.Errorf("update consignment visit: %w", err)
	}
	return nil
}

// ListByConsignment lista las visitas de una consignación.
func (r *ConsignmentVisitRepo) ListByConsignment(consignmentID string) ([]*entity.ConsignmentVisit, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, consignment_id, visit_date, type, status, notes, created_at
		 FROM consignment_visits WHERE consignment_id = $1 ORDER BY visit_date`, consignmentID)
	if err != nil {
		return nil, fmt.Errorf("list consignment visits: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConsignmentVisit
	for rows.Next() {
		var v entity.ConsignmentVisit
		if err := rows.Scan(&v.ID, &v.ConsignmentID, &v.VisitDate, &v.Type, &v.Status, &v.Notes, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consignment visit: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// DeleteByConsignment elimina todas las visitas de una consignación.
func (r *ConsignmentVisitRepo) DeleteByConsignment(consignmentID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM consignment_visits WHERE consignment_id = $1`, consignmentID)
	if err != nil {
		return fmt.Errorf("delete consignment visits: %w", err)
	}
	return nil
}
