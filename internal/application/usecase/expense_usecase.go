package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// ExpenseUseCase casos de uso para gastos operativos.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto. Amount debe ser estrictamente positivo.
// receiptPath es la ruta del comprobante ya guardado (vacío si no hay).
func (uc *ExpenseUseCase) Create(in dto.ExpenseRequest, receiptPath, userID string) (*dto.ExpenseResponse, error) {
	if in.Description == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	expense := &entity.Expense{
		ID:            uuid.New().String(),
		Description:   in.Description,
		Category:      in.Category,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Responsible:   in.Responsible,
		Date:          date,
		ReceiptPath:   receiptPath,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}
	return dto.NewExpenseResponse(expense), nil
}

// GetByID obtiene un gasto por id.
func (uc *ExpenseUseCase) GetByID(id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewExpenseResponse(expense), nil
}

// Update actualiza un gasto existente.
func (uc *ExpenseUseCase) Update(id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != "" {
		expense.Description = in.Description
	}
	if in.Category != "" {
		expense.Category = in.Category
	}
	if !in.Amount.IsZero() {
		if in.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = in.Amount
	}
	if in.PaymentMethod != "" {
		expense.PaymentMethod = in.PaymentMethod
	}
	if in.Responsible != "" {
		expense.Responsible = in.Responsible
	}
	if in.Date != nil {
		expense.Date = *in.Date
	}
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	return dto.NewExpenseResponse(expense), nil
}

// List lista gastos con filtros de rango y categoría.
func (uc *ExpenseUseCase) List(from, to *time.Time, category string, limit, offset int) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(from, to, category, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *dto.NewExpenseResponse(e))
	}
	return items, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(id string) error {
	expense, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
