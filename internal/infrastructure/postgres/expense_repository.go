package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, description, category, amount, payment_method, responsible, date, receipt_path, COALESCE(created_by, ''), created_at`

// Create persiste un gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, description, category, amount, payment_method, responsible, date, receipt_path, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Description, expense.Category, expense.Amount,
		expense.PaymentMethod, expense.Responsible, expense.Date,
		expense.ReceiptPath, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Description, &e.Category, &e.Amount, &e.PaymentMethod,
		&e.Responsible, &e.Date, &e.ReceiptPath, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Update actualiza un gasto existente.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE expenses SET description = $2, category = $3, amount = $4, payment_method = $5,
			responsible = $6, date = $7, receipt_path = $8
		 WHERE id = $1`,
		expense.ID, expense.Description, expense.Category, expense.Amount,
		expense.PaymentMethod, expense.Responsible, expense.Date, expense.ReceiptPath,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// List lista gastos con filtros opcionales de rango y categoría.
func (r *ExpenseRepo) List(from, to *time.Time, category string, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + ` FROM expenses
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date <= $2)
		  AND ($3 = '' OR category = $3)
		ORDER BY date DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, from, to, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount, &e.PaymentMethod,
			&e.Responsible, &e.Date, &e.ReceiptPath, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina un gasto por ID.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
