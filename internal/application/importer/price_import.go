package importer

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
	"github.com/tu-usuario/catalogo-pro/pkg/logger"
)

// PriceImporter aplica un CSV de price overrides sobre productos existentes.
// Misma forma que el import de productos pero sin camino de insert: un UPC
// sin match se registra en NotFound y como error, nunca se crea. Una regla
// de negocio rechaza overrides con final_price >= precio actual del producto.
//
// El override se persiste en Discount: precio unitario final con descuento
// (valor absoluto, no porcentaje).
type PriceImporter struct {
	products  repository.ProductRepository
	batchSize int
	log       *logger.Logger
}

// NewPriceImporter construye el importer. batchSize <= 0 usa el default.
func NewPriceImporter(products repository.ProductRepository, batchSize int, log *logger.Logger) *PriceImporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &PriceImporter{products: products, batchSize: batchSize, log: log}
}

// Import corre la actualización completa y devuelve las estadísticas finales.
// progress (opcional) recibe un snapshot tras cada lote.
func (i *PriceImporter) Import(ctx context.Context, r io.Reader, progress ProgressFunc) (*Stats, error) {
	rows, err := ParsePrices(r)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Total: len(rows)}

	batch := 0
	for start := 0; start < len(rows); start += i.batchSize {
		end := min(start+i.batchSize, len(rows))
		batch++
		i.processBatch(ctx, rows[start:end], stats)
		stats.Processed += end - start
		snap := stats.snapshot()
		if progress != nil {
			progress(snap)
		}
		i.log.Debug().
			Int("lote", batch).
			Int("procesadas", snap.Processed).
			Int("total", snap.Total).
			Int("errores", snap.Errors).
			Msg("lote de price overrides procesado")
	}

	final := stats.snapshot()
	i.log.Info().
		Int("total", final.Total).
		Int("actualizados", final.Updated).
		Int("errores", final.Errors).
		Int("sin_match", final.NotFound).
		Msg("import de price overrides finalizado")
	return &final, nil
}

func (i *PriceImporter) processBatch(ctx context.Context, batch []PriceRow, stats *Stats) {
	valid := make([]PriceRow, 0, len(batch))
	for _, row := range batch {
		if err := ValidatePriceRow(row); err != nil {
			stats.addError(row.Index, row.Raw, err.Error())
			continue
		}
		valid = append(valid, row)
	}
	if len(valid) == 0 {
		return
	}

	upcs := make([]string, 0, len(valid))
	for _, row := range valid {
		upcs = append(upcs, row.UPC)
	}
	existing, err := i.products.ListByUPCs(ctx, upcs)
	if err != nil {
		i.log.Error().Err(err).Msg("lookup de productos por UPC")
		for _, row := range valid {
			stats.addError(row.Index, row.Raw, "Product lookup failed")
		}
		return
	}
	byUPC := make(map[string]*entity.Product, len(existing))
	for _, p := range existing {
		byUPC[p.UPC] = p
	}

	for _, row := range valid {
		product, ok := byUPC[row.UPC]
		if !ok {
			stats.NotFound++
			stats.addError(row.Index, row.Raw, "Product UPC not found")
			continue
		}
		final, _ := decimal.NewFromString(row.FinalPrice) // ya validado
		if final.GreaterThanOrEqual(product.Price) {
			stats.addError(row.Index, row.Raw, "Final price must be less than product price")
			continue
		}
		if err := i.products.UpdateDiscount(ctx, product.ID, final); err != nil {
			i.log.Error().Err(err).Str("upc", row.UPC).Msg("aplicar price override")
			stats.addError(row.Index, row.Raw, "Price update failed")
			continue
		}
		stats.Updated++
	}
}
