package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
//
// Los campos Fail* permiten inyectar fallos de infraestructura en tests
// (lookup caído, escritura masiva rechazada). Quedan en nil en uso normal.
type ProductRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Product // por ID
	byUPC map[string]string          // UPC -> ID

	FailListByUPCs error
	FailBulkUpdate error
	FailBulkInsert error
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{
		items: make(map[string]*entity.Product),
		byUPC: make(map[string]string),
	}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(product)
}

func (r *ProductRepo) insertLocked(product *entity.Product) error {
	if _, ok := r.items[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.byUPC[product.UPC]; ok {
		return domain.ErrDuplicate
	}
	clone := *product
	r.items[product.ID] = &clone
	r.byUPC[product.UPC] = product.ID
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *ProductRepo) GetByUPC(_ context.Context, upc string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byUPC[upc]
	if !ok {
		return nil, nil
	}
	clone := *r.items[id]
	return &clone, nil
}

func (r *ProductRepo) ListByUPCs(_ context.Context, upcs []string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailListByUPCs != nil {
		return nil, r.FailListByUPCs
	}
	var list []*entity.Product
	for _, upc := range upcs {
		if id, ok := r.byUPC[upc]; ok {
			clone := *r.items[id]
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		clone := *p
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UPC < all[j].UPC })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(product)
}

// updateLocked muta solo los campos de catálogo, como el adaptador de
// PostgreSQL: upc, discount y wholesale_price se preservan.
func (r *ProductRepo) updateLocked(product *entity.Product) error {
	existing, ok := r.items[product.ID]
	if !ok {
		return nil
	}
	existing.Description = product.Description
	existing.Price = product.Price
	existing.CasePack = product.CasePack
	existing.Status = product.Status
	existing.ImageURL = product.ImageURL
	existing.CategoryID = product.CategoryID
	existing.UpdatedAt = product.UpdatedAt
	return nil
}

func (r *ProductRepo) UpsertByUPC(_ context.Context, product *entity.Product) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byUPC[product.UPC]; ok {
		upd := *product
		upd.ID = id
		return false, r.updateLocked(&upd)
	}
	return true, r.insertLocked(product)
}

func (r *ProductRepo) BulkInsert(_ context.Context, products []*entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailBulkInsert != nil {
		return r.FailBulkInsert
	}
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if _, ok := r.byUPC[p.UPC]; ok || seen[p.UPC] {
			return domain.ErrDuplicate
		}
		seen[p.UPC] = true
	}
	for _, p := range products {
		if err := r.insertLocked(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepo) BulkUpdate(_ context.Context, products []*entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailBulkUpdate != nil {
		return r.FailBulkUpdate
	}
	for _, p := range products {
		if err := r.updateLocked(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepo) UpdateDiscount(_ context.Context, id string, discount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[id]; ok {
		existing.Discount = discount
		existing.UpdatedAt = time.Now()
	}
	return nil
}

func (r *ProductRepo) UpdateWholesalePrice(_ context.Context, id string, price decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[id]; ok {
		existing.WholesalePrice = price
		existing.UpdatedAt = time.Now()
	}
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[id]; ok {
		delete(r.byUPC, existing.UPC)
		delete(r.items, id)
	}
	return nil
}

func (r *ProductRepo) DeleteByCategoryIDs(_ context.Context, categoryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		match[id] = true
	}
	for id, p := range r.items {
		if match[p.CategoryID] {
			delete(r.byUPC, p.UPC)
			delete(r.items, id)
		}
	}
	return nil
}

// Count devuelve la cantidad de productos almacenados.
func (r *ProductRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
