package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
	"golang.org/x/text/cases"
)

// MaxPathSegments tope de segmentos de una ruta "Padre>Hijo>Nieto"
// (tres niveles, alineado con la profundidad máxima del árbol).
const MaxPathSegments = 3

// PathResolver resuelve rutas "Padre>Hijo>Nieto" al ID de la categoría hoja,
// creando los nodos que falten. El match por nombre es case-insensitive.
// Mantiene un cache por corrida (prefijo normalizado -> id) para reducir
// llamadas al repositorio durante imports masivos.
//
// No es seguro para uso concurrente: crear un resolver por corrida.
type PathResolver struct {
	categories repository.CategoryRepository
	cache      map[string]string
	fold       cases.Caser
}

// NewPathResolver construye un resolver con cache vacío.
func NewPathResolver(categories repository.CategoryRepository) *PathResolver {
	return &PathResolver{
		categories: categories,
		cache:      make(map[string]string),
		fold:       cases.Fold(),
	}
}

// Resolve devuelve el ID de la categoría hoja de la ruta, creando sobre la
// marcha los segmentos inexistentes. Es idempotente: resolver dos veces la
// misma ruta devuelve el mismo ID sin crear duplicados.
func (r *PathResolver) Resolve(ctx context.Context, path string) (string, error) {
	segments, err := splitPath(path)
	if err != nil {
		return "", err
	}

	parentID := ""
	cacheKey := ""
	for _, name := range segments {
		cacheKey += r.fold.String(name) + ">"
		if id, ok := r.cache[cacheKey]; ok {
			parentID = id
			continue
		}
		existing, err := r.categories.GetByNameAndParent(ctx, name, parentID)
		if err != nil {
			return "", err
		}
		if existing != nil {
			r.cache[cacheKey] = existing.ID
			parentID = existing.ID
			continue
		}
		now := time.Now()
		created := &entity.Category{
			ID:        uuid.New().String(),
			Name:      name,
			ParentID:  parentID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.categories.Create(ctx, created); err != nil {
			return "", err
		}
		r.cache[cacheKey] = created.ID
		parentID = created.ID
	}
	return parentID, nil
}

// splitPath separa la ruta por '>' y recorta espacios. Ruta vacía, segmentos
// vacíos o más de MaxPathSegments segmentos son entrada inválida.
func splitPath(path string) ([]string, error) {
	parts := strings.Split(path, ">")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			return nil, domain.ErrInvalidInput
		}
		segments = append(segments, trimmed)
	}
	if len(segments) == 0 || len(segments) > MaxPathSegments {
		return nil, domain.ErrInvalidInput
	}
	return segments, nil
}
