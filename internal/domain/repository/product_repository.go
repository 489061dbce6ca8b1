package repository

import "github.com/jmorales-dev/granolapp-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(includeInactive bool, limit, offset int) ([]*entity.Product, error)
	Deactivate(id string) error
}

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Delete(id string) error
}

// PackagingTypeRepository define el puerto de persistencia para PackagingType.
type PackagingTypeRepository interface {
	Create(pt *entity.PackagingType) error
	GetByID(id string) (*entity.PackagingType, error)
	List() ([]*entity.PackagingType, error)
	Delete(id string) error
}
