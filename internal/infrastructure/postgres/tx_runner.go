package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/catalogo-pro/internal/application/usecase"
)

// Ensure TxRunner implements usecase.CascadeDeleter.
var _ usecase.CascadeDeleter = (*TxRunner)(nil)

// TxRunner ejecuta operaciones multi-tabla dentro de una transacción PostgreSQL.
// Es la cascada atómica del lado del servidor que el caso de uso de categorías
// prefiere sobre los borrados secuenciales cliente a cliente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// CascadeDelete borra en una sola transacción los productos que referencian
// cualquiera de las categorías dadas y luego las categorías mismas.
// Todo o nada: un fallo hace Rollback completo.
func (r *TxRunner) CascadeDelete(ctx context.Context, categoryIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	categoryRepo := NewCategoryRepository(tx)

	if err := productRepo.DeleteByCategoryIDs(ctx, categoryIDs); err != nil {
		return err
	}
	if err := categoryRepo.DeleteByIDs(ctx, categoryIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
