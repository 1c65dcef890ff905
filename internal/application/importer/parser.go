package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Parsing de los CSV de import. La cabecera es obligatoria; las columnas se
// reconocen por nombre (case-insensitive) y el orden es libre. Columnas no
// reconocidas se ignoran. El índice de fila es 1-based y absoluto sobre el
// archivo completo (sin contar la cabecera).

// ProductRow fila cruda del CSV de productos, aún sin validar.
type ProductRow struct {
	Index       int
	Raw         []string
	UPC         string
	Description string
	Price       string
	CasePack    string
	ImageURL    string
	Category    string
	Status      string
}

// PriceRow fila cruda del CSV de price overrides, aún sin validar.
type PriceRow struct {
	Index      int
	Raw        []string
	UPC        string
	FinalPrice string
}

// ParseProducts lee el archivo completo de productos. Un error aquí aborta
// la corrida (es el único fallo que no se absorbe en las estadísticas).
func ParseProducts(r io.Reader) ([]ProductRow, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if _, ok := header["upc"]; !ok {
		return nil, fmt.Errorf("cabecera inválida: falta la columna upc")
	}
	rows := make([]ProductRow, 0, len(records))
	for i, rec := range records {
		rows = append(rows, ProductRow{
			Index:       i + 1,
			Raw:         rec,
			UPC:         field(header, rec, "upc"),
			Description: field(header, rec, "description"),
			Price:       field(header, rec, "price"),
			CasePack:    field(header, rec, "case_pack"),
			ImageURL:    field(header, rec, "image_url"),
			Category:    field(header, rec, "category"),
			Status:      field(header, rec, "status"),
		})
	}
	return rows, nil
}

// ParsePrices lee el archivo completo de price overrides.
func ParsePrices(r io.Reader) ([]PriceRow, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if _, ok := header["upc"]; !ok {
		return nil, fmt.Errorf("cabecera inválida: falta la columna upc")
	}
	if _, ok := header["final_price"]; !ok {
		return nil, fmt.Errorf("cabecera inválida: falta la columna final_price")
	}
	rows := make([]PriceRow, 0, len(records))
	for i, rec := range records {
		rows = append(rows, PriceRow{
			Index:      i + 1,
			Raw:        rec,
			UPC:        field(header, rec, "upc"),
			FinalPrice: field(header, rec, "final_price"),
		})
	}
	return rows, nil
}

func readAll(r io.Reader) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // filas cortas se toleran; los campos faltantes quedan vacíos
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsear CSV: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("archivo vacío: se requiere fila de cabecera")
	}
	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, all[1:], nil
}

func field(header map[string]int, rec []string, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
