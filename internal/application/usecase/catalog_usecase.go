package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmorales-dev/granolapp-api/internal/application/dto"
	"github.com/jmorales-dev/granolapp-api/internal/domain"
	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
	"github.com/jmorales-dev/granolapp-api/internal/domain/repository"
)

// CatalogUseCase administra categorías y tipos de empaque.
type CatalogUseCase struct {
	categoryRepo  repository.CategoryRepository
	packagingRepo repository.PackagingTypeRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categoryRepo repository.CategoryRepository, packagingRepo repository.PackagingTypeRepository) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, packagingRepo: packagingRepo}
}

// CreateCategory crea una categoría.
func (uc *CatalogUseCase) CreateCategory(in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return dto.NewCategoryResponse(category), nil
}

// ListCategories lista todas las categorías.
func (uc *CatalogUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.NewCategoryResponse(c))
	}
	return items, nil
}

// DeleteCategory elimina una categoría.
func (uc *CatalogUseCase) DeleteCategory(id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

// CreatePackagingType crea un tipo de empaque.
func (uc *CatalogUseCase) CreatePackagingType(in dto.PackagingTypeRequest) (*dto.PackagingTypeResponse, error) {
	if in.Name == "" || !in.Weight.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	pt := &entity.PackagingType{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Weight:    in.Weight,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.packagingRepo.Create(pt); err != nil {
		return nil, err
	}
	return dto.NewPackagingTypeResponse(pt), nil
}

// ListPackagingTypes lista todos los tipos de empaque.
func (uc *CatalogUseCase) ListPackagingTypes() ([]dto.PackagingTypeResponse, error) {
	list, err := uc.packagingRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackagingTypeResponse, 0, len(list))
	for _, pt := range list {
		items = append(items, *dto.NewPackagingTypeResponse(pt))
	}
	return items, nil
}

// DeletePackagingType elimina un tipo de empaque.
func (uc *CatalogUseCase) DeletePackagingType(id string) error {
	pt, err := uc.packagingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pt == nil {
		return domain.ErrNotFound
	}
	return uc.packagingRepo.Delete(id)
}
