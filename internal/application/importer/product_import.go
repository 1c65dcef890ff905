package importer

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appcatalog "github.com/tu-usuario/catalogo-pro/internal/application/catalog"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
	"github.com/tu-usuario/catalogo-pro/pkg/logger"
)

// DefaultBatchSize tamaño de lote por defecto. El loteo existe para acotar
// los IN (...) de lookup y dar granularidad razonable al progreso, no por
// aislamiento transaccional.
const DefaultBatchSize = 50

// ProductImporter reconcilia un CSV de productos contra el catálogo:
// clasifica filas en insert/update por UPC, aplica escrituras masivas y
// degrada a upsert fila a fila ante conflictos de unicidad. Los lotes se
// procesan estrictamente en orden; el progreso se emite tras cada lote.
//
// Una fila mala nunca aborta la corrida: se registra en las estadísticas.
// Solo el fallo de parseo del archivo rechaza la corrida completa.
type ProductImporter struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	batchSize  int
	log        *logger.Logger
}

// NewProductImporter construye el importer. batchSize <= 0 usa el default.
func NewProductImporter(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	batchSize int,
	log *logger.Logger,
) *ProductImporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ProductImporter{
		products:   products,
		categories: categories,
		batchSize:  batchSize,
		log:        log,
	}
}

// Import corre la reconciliación completa y devuelve las estadísticas finales.
// progress (opcional) recibe un snapshot tras cada lote.
func (i *ProductImporter) Import(ctx context.Context, r io.Reader, progress ProgressFunc) (*Stats, error) {
	rows, err := ParseProducts(r)
	if err != nil {
		return nil, err
	}
	stats := &Stats{Total: len(rows)}
	run := &productRun{
		importer:    i,
		resolver:    appcatalog.NewPathResolver(i.categories), // cache de rutas por corrida
		stats:       stats,
		categoryIDs: make(map[string]bool),
	}

	batch := 0
	for start := 0; start < len(rows); start += i.batchSize {
		end := min(start+i.batchSize, len(rows))
		batch++
		run.processBatch(ctx, rows[start:end])
		// Se cuenta el lote completo (filas válidas e inválidas) pase lo que pase.
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
			Msg("lote de productos procesado")
	}

	final := stats.snapshot()
	i.log.Info().
		Int("total", final.Total).
		Int("agregados", final.Added).
		Int("actualizados", final.Updated).
		Int("errores", final.Errors).
		Msg("import de productos finalizado")
	return &final, nil
}

// productRun estado de una corrida: resolver con cache de rutas y cache de
// IDs de categoría ya verificados.
type productRun struct {
	importer    *ProductImporter
	resolver    *appcatalog.PathResolver
	stats       *Stats
	categoryIDs map[string]bool
}

func (run *productRun) processBatch(ctx context.Context, batch []ProductRow) {
	stats := run.stats

	// (a) resolver la categoría de cada fila (ruta jerárquica o ID directo)
	categoryByRow := make(map[int]string)
	resolveFailed := make(map[int]string)
	for _, row := range batch {
		if row.Category == "" {
			continue
		}
		id, err := run.resolveCategory(ctx, row.Category)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				resolveFailed[row.Index] = "Invalid category path"
			} else {
				resolveFailed[row.Index] = "Category resolution failed"
			}
			continue
		}
		categoryByRow[row.Index] = id
	}

	// (b) validación por fila; las inválidas quedan fuera del lote
	valid := make([]ProductRow, 0, len(batch))
	for _, row := range batch {
		if reason, failed := resolveFailed[row.Index]; failed {
			stats.addError(row.Index, row.Raw, reason)
			continue
		}
		if err := ValidateProductRow(row); err != nil {
			stats.addError(row.Index, row.Raw, err.Error())
			continue
		}
		valid = append(valid, row)
	}
	if len(valid) == 0 {
		return
	}

	// (c) lookup de existentes por UPC. Un fallo aquí es de infraestructura:
	// todas las filas válidas del lote se cuentan como error y se sigue.
	upcs := make([]string, 0, len(valid))
	for _, row := range valid {
		upcs = append(upcs, row.UPC)
	}
	existing, err := run.importer.products.ListByUPCs(ctx, upcs)
	if err != nil {
		run.importer.log.Error().Err(err).Msg("lookup de productos por UPC")
		for _, row := range valid {
			stats.addError(row.Index, row.Raw, "Product lookup failed")
		}
		return
	}
	byUPC := make(map[string]*entity.Product, len(existing))
	for _, p := range existing {
		byUPC[p.UPC] = p
	}

	// (d) partición en conjuntos de insert y update
	var toInsert, toUpdate []*entity.Product
	var insertRows, updateRows []ProductRow
	now := time.Now()
	for _, row := range valid {
		product := buildProduct(row, categoryByRow[row.Index], now)
		if prev, ok := byUPC[row.UPC]; ok {
			product.ID = prev.ID
			product.CreatedAt = prev.CreatedAt
			toUpdate = append(toUpdate, product)
			updateRows = append(updateRows, row)
		} else {
			toInsert = append(toInsert, product)
			insertRows = append(insertRows, row)
		}
	}

	// (e) update masivo; si falla, el conjunto completo de updates del lote
	// se cuenta como error (no se reintenta fila a fila)
	if len(toUpdate) > 0 {
		if err := run.importer.products.BulkUpdate(ctx, toUpdate); err != nil {
			run.importer.log.Error().Err(err).Msg("update masivo de productos")
			for _, row := range updateRows {
				stats.addError(row.Index, row.Raw, "Bulk update failed")
			}
		} else {
			stats.Updated += len(toUpdate)
		}
	}

	// (f) insert masivo; una violación de unicidad significa que otro escritor
	// insertó entre (c) y aquí: se degrada a upsert fila a fila por UPC
	if len(toInsert) > 0 {
		err := run.importer.products.BulkInsert(ctx, toInsert)
		switch {
		case err == nil:
			stats.Added += len(toInsert)
		case errors.Is(err, domain.ErrDuplicate):
			for k, product := range toInsert {
				row := insertRows[k]
				created, upErr := run.importer.products.UpsertByUPC(ctx, product)
				switch {
				case upErr != nil:
					stats.addError(row.Index, row.Raw, "Insert failed: "+upErr.Error())
				case created:
					stats.Added++
				default:
					// ya existía: se cuenta como actualización
					stats.Updated++
				}
			}
		default:
			run.importer.log.Error().Err(err).Msg("insert masivo de productos")
			for _, row := range insertRows {
				stats.addError(row.Index, row.Raw, "Bulk insert failed")
			}
		}
	}
}

// resolveCategory acepta un ID de categoría existente o una ruta
// "Padre>Hijo>Nieto" que se resuelve (y crea) vía el resolver.
func (run *productRun) resolveCategory(ctx context.Context, value string) (string, error) {
	if !strings.Contains(value, ">") {
		if run.categoryIDs[value] {
			return value, nil
		}
		existing, err := run.importer.categories.GetByID(ctx, value)
		if err != nil {
			return "", err
		}
		if existing != nil {
			run.categoryIDs[value] = true
			return value, nil
		}
	}
	return run.resolver.Resolve(ctx, value)
}

func buildProduct(row ProductRow, categoryID string, now time.Time) *entity.Product {
	price, _ := decimal.NewFromString(row.Price) // ya validado
	casePack, _ := strconv.Atoi(row.CasePack)
	if casePack < 0 {
		casePack = 0
	}
	return &entity.Product{
		ID:          uuid.New().String(),
		UPC:         row.UPC,
		Description: row.Description,
		Price:       price,
		CasePack:    casePack,
		Status:      entity.ParseStatus(row.Status),
		ImageURL:    row.ImageURL,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
