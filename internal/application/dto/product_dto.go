package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto desde el formulario de edición.
// Category acepta un ID de categoría o una ruta "Padre>Hijo>Nieto".
type CreateProductRequest struct {
	UPC            string          `json:"upc" validate:"required,min=1,max=100"`
	Description    string          `json:"description" validate:"required,min=1,max=500"`
	Price          decimal.Decimal `json:"price"`
	CasePack       int             `json:"case_pack" validate:"omitempty,min=0"`
	Status         string          `json:"status"`
	ImageURL       string          `json:"image_url"`
	Category       string          `json:"category"`
	Discount       decimal.Decimal `json:"discount"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Description    *string          `json:"description" validate:"omitempty,min=1,max=500"`
	Price          *decimal.Decimal `json:"price"`
	CasePack       *int             `json:"case_pack" validate:"omitempty,min=0"`
	Status         *string          `json:"status"`
	ImageURL       *string          `json:"image_url"`
	Category       *string          `json:"category"`
	Discount       *decimal.Decimal `json:"discount"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	UPC            string          `json:"upc"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	CasePack       int             `json:"case_pack"`
	Status         int             `json:"status"`
	ImageURL       string          `json:"image_url"`
	CategoryID     string          `json:"category_id,omitempty"`
	Discount       decimal.Decimal `json:"discount"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
