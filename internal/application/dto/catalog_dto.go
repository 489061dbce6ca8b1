package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmorales-dev/granolapp-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	UnitMeasure string          `json:"unit_measure"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	UnitMeasure *string          `json:"unit_measure,omitempty"`
	MinStock    *decimal.Decimal `json:"min_stock,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductResponse representación JSON de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	UnitMeasure string          `json:"unit_measure"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProductResponse convierte la entidad a su representación JSON.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Cost:        p.Cost,
		UnitMeasure: p.UnitMeasure,
		MinStock:    p.MinStock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CategoryRequest body para crear categorías.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse representación JSON de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCategoryResponse convierte la entidad.
func NewCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

// PackagingTypeRequest body para crear tipos de empaque.
type PackagingTypeRequest struct {
	Name   string          `json:"name"`
	Weight decimal.Decimal `json:"weight"`
}

// PackagingTypeResponse representación JSON de un tipo de empaque.
type PackagingTypeResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Weight    decimal.Decimal `json:"weight"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewPackagingTypeResponse convierte la entidad.
func NewPackagingTypeResponse(pt *entity.PackagingType) *PackagingTypeResponse {
	if pt == nil {
		return nil
	}
	return &PackagingTypeResponse{ID: pt.ID, Name: pt.Name, Weight: pt.Weight, Active: pt.Active, CreatedAt: pt.CreatedAt}
}

// CustomerRequest body para crear/actualizar clientes.
type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CustomerResponse representación JSON de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCustomerResponse convierte la entidad.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email,
		Address: c.Address, Active: c.Active, CreatedAt: c.CreatedAt,
	}
}

// WarehouseRequest body para crear/actualizar bodegas.
type WarehouseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// WarehouseResponse representación JSON de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWarehouseResponse convierte la entidad.
func NewWarehouseResponse(w *entity.Warehouse) *WarehouseResponse {
	if w == nil {
		return nil
	}
	return &WarehouseResponse{ID: w.ID, Code: w.Code, Name: w.Name, Address: w.Address, Active: w.Active, CreatedAt: w.CreatedAt}
}
