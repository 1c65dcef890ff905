package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/catalogo-pro/internal/application/dto"
	"github.com/tu-usuario/catalogo-pro/internal/application/importer"
)

// ImportHandler expone los imports masivos por CSV. La corrida siempre
// termina con un resumen de estadísticas (una fila mala no aborta el
// archivo); solo un archivo imparseable produce un error HTTP.
type ImportHandler struct {
	products *importer.ProductImporter
	prices   *importer.PriceImporter
}

// NewImportHandler construye el handler.
func NewImportHandler(products *importer.ProductImporter, prices *importer.PriceImporter) *ImportHandler {
	return &ImportHandler{products: products, prices: prices}
}

// ImportProducts godoc
// @Summary      Import masivo de productos por CSV
// @Description  Upsert por UPC. Columnas: upc, description, price, case_pack, image_url, category, status. category admite ID o ruta "Padre>Hijo>Nieto".
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV con cabecera"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/imports/products [post]
func (h *ImportHandler) ImportProducts(c *fiber.Ctx) error {
	file, err := openUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el archivo CSV en el campo file"})
	}
	defer file.Close()

	stats, err := h.products.Import(c.Context(), file, nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	return c.JSON(toImportResult(stats))
}

// ImportPriceOverrides godoc
// @Summary      Import masivo de price overrides por CSV
// @Description  Actualiza el precio final con descuento de productos existentes. Columnas: upc, final_price. Nunca crea productos.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV con cabecera"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/imports/price-overrides [post]
func (h *ImportHandler) ImportPriceOverrides(c *fiber.Ctx) error {
	file, err := openUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el archivo CSV en el campo file"})
	}
	defer file.Close()

	stats, err := h.prices.Import(c.Context(), file, nil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	return c.JSON(toImportResult(stats))
}

func openUpload(c *fiber.Ctx) (multipart.File, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	return header.Open()
}

func toImportResult(stats *importer.Stats) dto.ImportResultResponse {
	records := make([]dto.ImportErrorRecord, 0, len(stats.ErrorRecords))
	for _, r := range stats.ErrorRecords {
		records = append(records, dto.ImportErrorRecord{Row: r.Row, Raw: r.Raw, Reason: r.Reason})
	}
	return dto.ImportResultResponse{
		Total:        stats.Total,
		Processed:    stats.Processed,
		Added:        stats.Added,
		Updated:      stats.Updated,
		Errors:       stats.Errors,
		NotFound:     stats.NotFound,
		Percentage:   stats.Percentage,
		ErrorRecords: records,
	}
}
