package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso para bodegas. No hay borrado: las bodegas
// aparecen en todo el libro de movimientos.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una bodega con código único.
func (uc *WarehouseUseCase) Create(in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return dto.NewWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por id.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return dto.NewWarehouseResponse(warehouse), nil
}

// Update actualiza nombre y dirección. El código no cambia.
func (uc *WarehouseUseCase) Update(id string, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		warehouse.Name = in.Name
	}
	warehouse.Address = in.Address
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return dto.NewWarehouseResponse(warehouse), nil
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List() ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *dto.NewWarehouseResponse(w))
	}
	return items, nil
}
