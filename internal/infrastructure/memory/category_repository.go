// Package memory implementa los puertos de persistencia en memoria.
// Sustituye a PostgreSQL en tests y permite correr la aplicación sin base
// de datos (demos, prototipos).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Category
}

// NewCategoryRepository construye el repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{items: make(map[string]*entity.Category)}
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[category.ID]; ok {
		return domain.ErrDuplicate
	}
	clone := *category
	r.items[category.ID] = &clone
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *CategoryRepo) GetByNameAndParent(_ context.Context, name, parentID string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.ParentID == parentID && strings.EqualFold(c.Name, name) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entity.Category, 0, len(r.items))
	for _, c := range r.items {
		clone := *c
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[category.ID]
	if !ok {
		return nil
	}
	existing.Name = category.Name
	existing.UpdatedAt = category.UpdatedAt
	return nil
}

func (r *CategoryRepo) UpdateParent(_ context.Context, id, parentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[id]; ok {
		existing.ParentID = parentID
	}
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *CategoryRepo) DeleteByIDs(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.items, id)
	}
	return nil
}

// Count devuelve la cantidad de categorías almacenadas.
func (r *CategoryRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
