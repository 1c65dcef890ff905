package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/catalogo-pro/internal/application/importer"
	"github.com/tu-usuario/catalogo-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC      *usecase.CategoryUseCase
	ProductUC       *usecase.ProductUseCase
	ProductImporter *importer.ProductImporter
	PriceImporter   *importer.PriceImporter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Categorías (árbol del catálogo)
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.Tree)
	categories.Put("/:id", categoryHandler.Update)
	categories.Put("/:id/move", categoryHandler.Move)
	categories.Delete("/:id", categoryHandler.Delete)

	// Productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Imports masivos por CSV
	imports := api.Group("/imports")
	importHandler := NewImportHandler(deps.ProductImporter, deps.PriceImporter)
	imports.Post("/products", importHandler.ImportProducts)
	imports.Post("/price-overrides", importHandler.ImportPriceOverrides)
}
