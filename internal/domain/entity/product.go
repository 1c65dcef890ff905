package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado de un producto en el catálogo.
type ProductStatus int

const (
	StatusInactive    ProductStatus = 0
	StatusActive      ProductStatus = 1
	StatusLowQuantity ProductStatus = 2
)

// ParseStatus interpreta el estado desde CSV o formularios.
// Acepta el valor numérico o el nombre; vacío o no reconocido se trata
// como activo (el estado no es campo obligatorio del import).
func ParseStatus(s string) ProductStatus {
	switch s {
	case "0", "inactive":
		return StatusInactive
	case "2", "low_quantity":
		return StatusLowQuantity
	default:
		return StatusActive
	}
}

// Product representa un producto del catálogo, identificado por UPC (clave natural única).
// Discount es el precio unitario final con descuento (valor absoluto, no porcentaje).
type Product struct {
	ID             string
	UPC            string // clave natural única
	Description    string
	Price          decimal.Decimal
	CasePack       int
	Status         ProductStatus
	ImageURL       string
	CategoryID     string // vacío si no tiene categoría
	Discount       decimal.Decimal
	WholesalePrice decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
