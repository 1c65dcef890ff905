package repository

import (
	"context"

	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByNameAndParent busca por nombre (case-insensitive) bajo el padre dado.
	// parentID vacío busca entre las raíces (parent_id IS NULL).
	GetByNameAndParent(ctx context.Context, name, parentID string) (*entity.Category, error)
	// List devuelve todas las categorías ordenadas por nombre ascendente.
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	UpdateParent(ctx context.Context, id, parentID string) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
}
