package main

import (
	"context"
	"flag"
	"os"
	"sync"

	"github.com/tu-usuario/catalogo-pro/internal/application/importer"
	"github.com/tu-usuario/catalogo-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/catalogo-pro/pkg/config"
	"github.com/tu-usuario/catalogo-pro/pkg/logger"
)

// Corre un import masivo desde un CSV local, imprimiendo el progreso lote a
// lote. Útil para cargas iniciales de catálogo sin pasar por la API.
//
//	go run ./cmd/import -file productos.csv -type products
//	go run ./cmd/import -file precios.csv -type prices
func main() {
	filePath := flag.String("file", "", "ruta del archivo CSV")
	runType := flag.String("type", "products", "tipo de corrida: products o prices")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *filePath == "" {
		log.Fatal().Msg("se requiere -file con la ruta del CSV")
	}
	file, err := os.Open(*filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("abrir archivo")
	}
	defer file.Close()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	// Canal de progreso: un snapshot por lote, consumido en paralelo.
	progress := make(chan importer.Stats)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for snap := range progress {
			log.Info().
				Int("porcentaje", snap.Percentage).
				Int("procesadas", snap.Processed).
				Int("agregados", snap.Added).
				Int("actualizados", snap.Updated).
				Int("errores", snap.Errors).
				Msg("progreso")
		}
	}()

	var stats *importer.Stats
	switch *runType {
	case "products":
		imp := importer.NewProductImporter(productRepo, categoryRepo, cfg.Import.BatchSize, log)
		stats, err = imp.Import(ctx, file, importer.ChannelProgress(progress))
	case "prices":
		imp := importer.NewPriceImporter(productRepo, cfg.Import.BatchSize, log)
		stats, err = imp.Import(ctx, file, importer.ChannelProgress(progress))
	default:
		close(progress)
		wg.Wait()
		log.Fatal().Str("type", *runType).Msg("tipo de corrida desconocido")
		return
	}
	close(progress)
	wg.Wait()

	if err != nil {
		log.Fatal().Err(err).Msg("la corrida no pudo iniciarse")
	}
	for _, rec := range stats.ErrorRecords {
		log.Warn().Int("fila", rec.Row).Str("motivo", rec.Reason).Msg("fila rechazada")
	}
	log.Info().
		Int("total", stats.Total).
		Int("agregados", stats.Added).
		Int("actualizados", stats.Updated).
		Int("errores", stats.Errors).
		Int("sin_match", stats.NotFound).
		Msg("corrida finalizada")
}
