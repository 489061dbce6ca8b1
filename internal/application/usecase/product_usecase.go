package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock nunca se toca
// aquí: se maneja por bodega vía el libro de movimientos.
type ProductUseCase struct {
	repo    repository.ProductRepository
	invRepo repository.InventoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, invRepo repository.InventoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, invRepo: invRepo}
}

// Create crea un producto activo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "unidad"
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Cost:        in.Cost,
		UnitMeasure: in.UnitMeasure,
		MinStock:    in.MinStock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto junto con su stock por bodega.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, []dto.InventoryItemResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.invRepo.ListByProduct(id)
	if err != nil {
		return nil, nil, err
	}
	stock := make([]dto.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		stock = append(stock, *dto.NewInventoryItemResponse(item))
	}
	return dto.NewProductResponse(product), stock, nil
}

// Update actualiza los campos presentes.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(includeInactive bool, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(includeInactive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return items, nil
}

// Deactivate desactiva un producto. No se borra: ventas, recetas y
// movimientos históricos lo referencian.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}
