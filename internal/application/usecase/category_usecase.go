package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/catalogo-pro/internal/application/dto"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/catalog"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
)

// DefaultMaxDepth profundidad máxima de una categoría respecto a su raíz
// (raíz = 0; tres niveles en total).
const DefaultMaxDepth = 2

// CascadeDeleter puerto opcional para el borrado en cascada atómico del lado
// del servidor (una sola transacción: productos referenciados y luego categorías).
// Si no está disponible, el caso de uso hace borrados secuenciales cliente a cliente.
type CascadeDeleter interface {
	CascadeDelete(ctx context.Context, categoryIDs []string) error
}

// CategoryUseCase mantiene los invariantes del árbol de categorías:
// sin ciclos y profundidad acotada. Cada operación valida contra la lista
// completa antes de persistir.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cascade    CascadeDeleter // nil si el backend no ofrece cascada atómica
	maxDepth   int
}

// NewCategoryUseCase construye el caso de uso. cascade puede ser nil.
func NewCategoryUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	cascade CascadeDeleter,
	maxDepth int,
) *CategoryUseCase {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &CategoryUseCase{
		categories: categories,
		products:   products,
		cascade:    cascade,
		maxDepth:   maxDepth,
	}
}

// Create crea una categoría, raíz o bajo un padre existente.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.categories.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		flat, err := uc.categories.List(ctx)
		if err != nil {
			return nil, err
		}
		if catalog.Depth(flat, parent.ID)+1 > uc.maxDepth {
			return nil, domain.ErrMaxDepth
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update renombra una categoría. Si cambia el padre, aplica las mismas
// validaciones de ciclo y profundidad que Move. Todos los campos se validan
// antes de persistir nada: un rechazo nunca deja un cambio parcial aplicado.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	name := category.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.ParentID != nil && *in.ParentID != category.ParentID {
		moved, err := uc.Move(ctx, id, *in.ParentID)
		if err != nil {
			return nil, err
		}
		category.ParentID = moved.ParentID
	}
	category.Name = name
	category.UpdatedAt = time.Now()
	if err := uc.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Move reubica un subárbol bajo otro padre (o a raíz con newParentID vacío).
// Rechaza con ErrCycle si el destino es la propia categoría o un descendiente,
// y con ErrMaxDepth si la profundidad resultante supera el máximo. Ante un
// rechazo el árbol queda intacto.
func (uc *CategoryUseCase) Move(ctx context.Context, id, newParentID string) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if newParentID == id {
		return nil, domain.ErrCycle
	}
	if newParentID != "" {
		parent, err := uc.categories.GetByID(ctx, newParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}

	flat, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	index := catalog.ChildIndex(flat)

	// Guarda de ciclos: el destino no puede estar dentro del subárbol que se mueve.
	if newParentID != "" {
		for _, descID := range catalog.Descendants(index, id) {
			if descID == newParentID {
				return nil, domain.ErrCycle
			}
		}
	}

	// Profundidad resultante: nivel del nuevo padre + 1 + descendiente más profundo.
	deepest := catalog.DeepestRelativeDepth(index, id)
	newDepth := deepest
	if newParentID != "" {
		newDepth = catalog.Depth(flat, newParentID) + 1 + deepest
	}
	if newDepth > uc.maxDepth {
		return nil, domain.ErrMaxDepth
	}

	if err := uc.categories.UpdateParent(ctx, id, newParentID); err != nil {
		return nil, err
	}
	category.ParentID = newParentID
	category.UpdatedAt = time.Now()
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría junto con todos sus descendientes y los productos
// que referencian cualquiera de ellos. Prefiere la cascada atómica del servidor;
// sin ella, hace borrados secuenciales (productos primero, luego categorías de
// hijos hacia padres). El fallback no tiene garantía transaccional: un fallo a
// mitad de camino deja aplicado lo ya borrado.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}

	flat, err := uc.categories.List(ctx)
	if err != nil {
		return err
	}
	index := catalog.ChildIndex(flat)
	descendants := catalog.Descendants(index, id)
	all := append(descendants, id)

	if uc.cascade != nil {
		return uc.cascade.CascadeDelete(ctx, all)
	}

	if err := uc.products.DeleteByCategoryIDs(ctx, all); err != nil {
		return err
	}
	// Descendants lista padres antes que hijos; se recorre al revés para
	// borrar hijos antes que padres.
	for i := len(descendants) - 1; i >= 0; i-- {
		if err := uc.categories.Delete(ctx, descendants[i]); err != nil {
			return err
		}
	}
	return uc.categories.Delete(ctx, id)
}

// Tree devuelve el bosque completo de categorías, hermanos ordenados por nombre.
func (uc *CategoryUseCase) Tree(ctx context.Context) (*dto.CategoryTreeResponse, error) {
	flat, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	forest := catalog.BuildTree(flat)
	return &dto.CategoryTreeResponse{Items: toCategoryNodes(forest)}, nil
}

func toCategoryNodes(nodes []*catalog.Node) []dto.CategoryNode {
	out := make([]dto.CategoryNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryNode{
			CategoryResponse: *toCategoryResponse(n.Category),
			Children:         toCategoryNodes(n.Children),
		})
	}
	return out
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
