package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// RawMaterialUseCase casos de uso para materias primas. El ajuste manual de
// stock pasa por ApplyDelta: un UPDATE condicional de una sola sentencia, sin
// read-modify-write.
type RawMaterialUseCase struct {
	repo repository.RawMaterialRepository
}

// NewRawMaterialUseCase construye el caso de uso.
func NewRawMaterialUseCase(repo repository.RawMaterialRepository) *RawMaterialUseCase {
	return &RawMaterialUseCase{repo: repo}
}

// Create crea una materia prima activa.
func (uc *RawMaterialUseCase) Create(in dto.RawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if in.Name == "" || in.CostPerUnit.IsNegative() || in.Stock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "kg"
	}
	now := time.Now().UTC()
	material := &entity.RawMaterial{
		ID:          uuid.New().String(),
		Name:        in.Name,
		UnitMeasure: in.UnitMeasure,
		CostPerUnit: in.CostPerUnit,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return dto.NewRawMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por id.
func (uc *RawMaterialUseCase) GetByID(id string) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewRawMaterialResponse(material), nil
}

// Update actualiza nombre, unidad, costo y mínimo. El stock NO se actualiza
// aquí: usa AdjustStock.
func (uc *RawMaterialUseCase) Update(id string, in dto.RawMaterialRequest) (*dto.RawMaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		material.Name = in.Name
	}
	if in.UnitMeasure != "" {
		material.UnitMeasure = in.UnitMeasure
	}
	if in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	material.CostPerUnit = in.CostPerUnit
	material.MinStock = in.MinStock
	material.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return dto.NewRawMaterialResponse(material), nil
}

// AdjustStock aplica un delta atómico al stock. Si el delta dejaría el stock
// negativo devuelve InsufficientStockError con el stock vigente.
func (uc *RawMaterialUseCase) AdjustStock(id string, in dto.AdjustRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	updated, err := uc.repo.ApplyDelta(id, in.Delta)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// La condición stock+delta >= 0 falló. El stock reportado puede estar
		// levemente desfasado pero el rechazo en sí es exacto.
		return nil, &domain.InsufficientStockError{Current: material.Stock, Requested: in.Delta.Neg()}
	}
	log.Info().
		Str("raw_material", id).
		Str("delta", in.Delta.String()).
		Str("reason", in.Reason).
		Msg("stock de materia prima ajustado")
	return dto.NewRawMaterialResponse(updated), nil
}

// List lista materias primas.
func (uc *RawMaterialUseCase) List(includeInactive bool) ([]dto.RawMaterialResponse, error) {
	list, err := uc.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *dto.NewRawMaterialResponse(m))
	}
	return items, nil
}

// Deactivate desactiva una materia prima.
func (uc *RawMaterialUseCase) Deactivate(id string) error {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}
