package importer

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Validación por fila, independiente del resto del lote. Una fila inválida
// se registra como error y nunca llega a persistencia; la corrida continúa
// con las filas válidas del mismo lote.
//
// Los motivos son los textos que ve el usuario en el resumen de la corrida.
var (
	errMissingUPC         = errors.New("Missing UPC")
	errMissingDescription = errors.New("Missing description")
	errInvalidPrice       = errors.New("Invalid price")
	errInvalidFinalPrice  = errors.New("Invalid final price")
)

// ValidateProductRow valida presencia y tipo de los campos obligatorios de
// una fila de producto: upc, description y price numérico no negativo.
func ValidateProductRow(row ProductRow) error {
	if row.UPC == "" {
		return errMissingUPC
	}
	if row.Description == "" {
		return errMissingDescription
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil || price.IsNegative() {
		return errInvalidPrice
	}
	return nil
}

// ValidatePriceRow valida una fila de price override: upc presente y
// final_price numérico positivo. La regla final_price < precio actual se
// verifica después, contra el producto ya buscado.
func ValidatePriceRow(row PriceRow) error {
	if row.UPC == "" {
		return errMissingUPC
	}
	price, err := decimal.NewFromString(row.FinalPrice)
	if err != nil || !price.IsPositive() {
		return errInvalidFinalPrice
	}
	return nil
}
