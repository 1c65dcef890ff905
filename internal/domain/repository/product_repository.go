package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByUPC(ctx context.Context, upc string) (*entity.Product, error)
	// ListByUPCs devuelve los productos existentes cuyo UPC está en el conjunto dado.
	ListByUPCs(ctx context.Context, upcs []string) ([]*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Update actualiza los campos de catálogo por ID (description, price,
	// case_pack, status, image_url, category_id). Nunca toca upc, discount ni
	// wholesale_price: un price override aplicado sobrevive a un update.
	Update(ctx context.Context, product *entity.Product) error
	// UpsertByUPC inserta o actualiza por clave natural. Devuelve true si
	// insertó. La rama de update preserva los mismos campos que Update.
	UpsertByUPC(ctx context.Context, product *entity.Product) (bool, error)
	// BulkInsert inserta el lote completo; si algún UPC ya existe devuelve domain.ErrDuplicate.
	BulkInsert(ctx context.Context, products []*entity.Product) error
	// BulkUpdate actualiza el lote completo por ID, con el mismo contrato de
	// campos que Update.
	BulkUpdate(ctx context.Context, products []*entity.Product) error
	// UpdateDiscount fija solo el precio final con descuento (price override).
	UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) error
	// UpdateWholesalePrice fija solo el precio mayorista.
	UpdateWholesalePrice(ctx context.Context, id string, price decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	DeleteByCategoryIDs(ctx context.Context, categoryIDs []string) error
}
