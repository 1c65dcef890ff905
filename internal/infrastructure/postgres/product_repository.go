package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, upc, description, price, case_pack, status, image_url, category_id, discount, wholesale_price, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). El UPC tiene constraint único: el pipeline de import
// lo usa como señal de concurrencia optimista.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, insertArgs(product)...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product")
}

// GetByUPC obtiene un producto por su clave natural.
func (r *ProductRepo) GetByUPC(ctx context.Context, upc string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE upc = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, upc), "get product by upc")
}

// ListByUPCs devuelve los productos existentes cuyo UPC está en el conjunto.
// El import lotea justamente para acotar el tamaño de este ANY.
func (r *ProductRepo) ListByUPCs(ctx context.Context, upcs []string) ([]*entity.Product, error) {
	if len(upcs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE upc = ANY($1)`
	rows, err := r.q.Query(ctx, query, upcs)
	if err != nil {
		return nil, fmt.Errorf("list products by upc: %w", err)
	}
	defer rows.Close()
	return r.scanList(rows)
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanList(rows)
}

// Update actualiza los campos de catálogo por ID. upc, discount y
// wholesale_price quedan fuera del SET: los price overrides aplicados
// sobreviven a updates y re-imports.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	_, err := r.q.Exec(ctx, updateQuery, updateArgs(product)...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpsertByUPC inserta o actualiza por clave natural en una sola sentencia.
// Devuelve true si insertó (xmax = 0 en la fila resultante). El SET del
// conflicto excluye discount y wholesale_price, igual que Update.
func (r *ProductRepo) UpsertByUPC(ctx context.Context, product *entity.Product) (bool, error) {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (upc) DO UPDATE SET
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			case_pack = EXCLUDED.case_pack,
			status = EXCLUDED.status,
			image_url = EXCLUDED.image_url,
			category_id = EXCLUDED.category_id,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var inserted bool
	if err := r.q.QueryRow(ctx, query, insertArgs(product)...).Scan(&inserted); err != nil {
		return false, fmt.Errorf("upsert product: %w", err)
	}
	return inserted, nil
}

// BulkInsert inserta el lote en un batch. Si algún UPC ya existe devuelve
// domain.ErrDuplicate para que el pipeline degrade a upsert fila a fila.
func (r *ProductRepo) BulkInsert(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, p := range products {
		batch.Queue(query, insertArgs(p)...)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("bulk insert products: %w", err)
	}
	return nil
}

// BulkUpdate actualiza el lote completo por ID en un batch, con el mismo
// contrato de campos que Update.
func (r *ProductRepo) BulkUpdate(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(updateQuery, updateArgs(p)...)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return fmt.Errorf("bulk update products: %w", err)
	}
	return nil
}

// UpdateDiscount fija solo el precio final con descuento (price override).
func (r *ProductRepo) UpdateDiscount(ctx context.Context, id string, discount decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET discount = $2, updated_at = now() WHERE id = $1`,
		id, discount,
	)
	if err != nil {
		return fmt.Errorf("update product discount: %w", err)
	}
	return nil
}

// UpdateWholesalePrice fija solo el precio mayorista.
func (r *ProductRepo) UpdateWholesalePrice(ctx context.Context, id string, price decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET wholesale_price = $2, updated_at = now() WHERE id = $1`,
		id, price,
	)
	if err != nil {
		return fmt.Errorf("update product wholesale price: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteByCategoryIDs elimina todos los productos que referencian alguna de
// las categorías dadas (paso previo del borrado en cascada).
func (r *ProductRepo) DeleteByCategoryIDs(ctx context.Context, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE category_id = ANY($1)`, categoryIDs)
	if err != nil {
		return fmt.Errorf("delete products by category: %w", err)
	}
	return nil
}

const updateQuery = `
	UPDATE products SET description = $2, price = $3, case_pack = $4, status = $5,
		image_url = $6, category_id = $7, updated_at = $8
	WHERE id = $1`

func insertArgs(p *entity.Product) []any {
	return []any{
		p.ID, p.UPC, p.Description, p.Price, p.CasePack, int(p.Status),
		p.ImageURL, nullIfEmpty(p.CategoryID), p.Discount, p.WholesalePrice,
		p.CreatedAt, p.UpdatedAt,
	}
}

func updateArgs(p *entity.Product) []any {
	return []any{
		p.ID, p.Description, p.Price, p.CasePack, int(p.Status),
		p.ImageURL, nullIfEmpty(p.CategoryID), p.UpdatedAt,
	}
}

func (r *ProductRepo) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *ProductRepo) scanList(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var status int
	var categoryID *string
	err := row.Scan(&p.ID, &p.UPC, &p.Description, &p.Price, &p.CasePack, &status,
		&p.ImageURL, &categoryID, &p.Discount, &p.WholesalePrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = entity.ProductStatus(status)
	p.CategoryID = deref(categoryID)
	return &p, nil
}
