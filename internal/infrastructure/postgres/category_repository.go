package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). parent_id NULL en tabla equivale a ParentID vacío.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		category.ID, category.Name, nullIfEmpty(category.ParentID),
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `
		SELECT id, name, parent_id, created_at, updated_at
		FROM categories WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get category")
}

// GetByNameAndParent busca por nombre (case-insensitive) bajo el padre dado.
// parentID vacío busca entre las raíces (parent_id IS NULL).
func (r *CategoryRepo) GetByNameAndParent(ctx context.Context, name, parentID string) (*entity.Category, error) {
	if parentID == "" {
		query := `
			SELECT id, name, parent_id, created_at, updated_at
			FROM categories WHERE LOWER(name) = LOWER($1) AND parent_id IS NULL`
		return r.scanOne(r.q.QueryRow(ctx, query, name), "get category by name")
	}
	query := `
		SELECT id, name, parent_id, created_at, updated_at
		FROM categories WHERE LOWER(name) = LOWER($1) AND parent_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, name, parentID), "get category by name")
}

// List devuelve todas las categorías ordenadas por nombre ascendente.
// El orden de hermanos del árbol sale de aquí.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	query := `
		SELECT id, name, parent_id, created_at, updated_at
		FROM categories ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID *string
		if err := rows.Scan(&c.ID, &c.Name, &parentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = deref(parentID)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza nombre y updated_at. El padre se cambia vía UpdateParent.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `UPDATE categories SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, category.ID, category.Name, category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// UpdateParent reubica la categoría bajo otro padre (vacío = raíz).
// Las validaciones de ciclo y profundidad son responsabilidad del caso de uso.
func (r *CategoryRepo) UpdateParent(ctx context.Context, id, parentID string) error {
	query := `UPDATE categories SET parent_id = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, nullIfEmpty(parentID))
	if err != nil {
		return fmt.Errorf("update category parent: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DeleteByIDs elimina el conjunto completo en una sola sentencia.
func (r *CategoryRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row, op string) (*entity.Category, error) {
	var c entity.Category
	var parentID *string
	err := row.Scan(&c.ID, &c.Name, &parentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.ParentID = deref(parentID)
	return &c, nil
}
