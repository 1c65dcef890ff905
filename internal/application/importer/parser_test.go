package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalogo-pro/internal/application/importer"
)

func TestParseProducts_ColumnasPorNombreYOrdenLibre(t *testing.T) {
	csv := "description,price,upc\nCola 2L,3.50,100\nPapas,2.00,200\n"

	rows, err := importer.ParseProducts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Index, "índice 1-based sin contar cabecera")
	assert.Equal(t, "100", rows[0].UPC)
	assert.Equal(t, "Cola 2L", rows[0].Description)
	assert.Equal(t, "3.50", rows[0].Price)
	assert.Equal(t, 2, rows[1].Index)
}

func TestParseProducts_CabeceraCaseInsensitive(t *testing.T) {
	csv := "UPC,Description,PRICE\n100,Cola,1.00\n"

	rows, err := importer.ParseProducts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].UPC)
	assert.Equal(t, "1.00", rows[0].Price)
}

func TestParseProducts_ColumnasDesconocidasSeIgnoran(t *testing.T) {
	csv := "upc,description,price,sku_interno\n100,Cola,1.00,ABC\n"

	rows, err := importer.ParseProducts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cola", rows[0].Description)
}

func TestParseProducts_FilaCortaDejaCamposVacios(t *testing.T) {
	csv := "upc,description,price\n100,Cola\n"

	rows, err := importer.ParseProducts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Price)
}

func TestParseProducts_SinColumnaUPC(t *testing.T) {
	csv := "description,price\nCola,1.00\n"

	_, err := importer.ParseProducts(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseProducts_ArchivoVacio(t *testing.T) {
	_, err := importer.ParseProducts(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParsePrices_RequiereFinalPrice(t *testing.T) {
	_, err := importer.ParsePrices(strings.NewReader("upc\n100\n"))
	assert.Error(t, err)

	rows, err := importer.ParsePrices(strings.NewReader("upc,final_price\n100,2.99\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2.99", rows[0].FinalPrice)
}

func TestValidateProductRow(t *testing.T) {
	cases := []struct {
		name    string
		row     importer.ProductRow
		wantErr string
	}{
		{"válida", importer.ProductRow{UPC: "100", Description: "Cola", Price: "1.00"}, ""},
		{"precio cero válido", importer.ProductRow{UPC: "100", Description: "Cola", Price: "0"}, ""},
		{"sin upc", importer.ProductRow{Description: "Cola", Price: "1.00"}, "Missing UPC"},
		{"sin descripción", importer.ProductRow{UPC: "100", Price: "1.00"}, "Missing description"},
		{"precio no numérico", importer.ProductRow{UPC: "100", Description: "Cola", Price: "abc"}, "Invalid price"},
		{"precio negativo", importer.ProductRow{UPC: "100", Description: "Cola", Price: "-1"}, "Invalid price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := importer.ValidateProductRow(tc.row)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidatePriceRow(t *testing.T) {
	cases := []struct {
		name    string
		row     importer.PriceRow
		wantErr string
	}{
		{"válida", importer.PriceRow{UPC: "100", FinalPrice: "2.99"}, ""},
		{"sin upc", importer.PriceRow{FinalPrice: "2.99"}, "Missing UPC"},
		{"precio no numérico", importer.PriceRow{UPC: "100", FinalPrice: "abc"}, "Invalid final price"},
		{"precio cero", importer.PriceRow{UPC: "100", FinalPrice: "0"}, "Invalid final price"},
		{"precio negativo", importer.PriceRow{UPC: "100", FinalPrice: "-2"}, "Invalid final price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := importer.ValidatePriceRow(tc.row)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}
