package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/tu-usuario/catalogo-pro/internal/application/catalog"
	"github.com/tu-usuario/catalogo-pro/internal/application/dto"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos (formulario de edición).
// El campo category acepta un ID o una ruta "Padre>Hijo>Nieto"; la ruta se
// resuelve a un ID antes de persistir, igual que en el import masivo.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories}
}

// Create crea un nuevo producto. El UPC debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() || in.Discount.IsNegative() || in.WholesalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.products.GetByUPC(ctx, in.UPC)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	categoryID, err := uc.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		UPC:            in.UPC,
		Description:    in.Description,
		Price:          in.Price,
		CasePack:       in.CasePack,
		Status:         entity.ParseStatus(in.Status),
		ImageURL:       in.ImageURL,
		CategoryID:     categoryID,
		Discount:       in.Discount,
		WholesalePrice: in.WholesalePrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto existente campo a campo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.CasePack != nil {
		if *in.CasePack < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.CasePack = *in.CasePack
	}
	if in.Status != nil {
		product.Status = entity.ParseStatus(*in.Status)
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		categoryID, err := uc.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if in.Discount != nil && in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.WholesalePrice != nil && in.WholesalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	// Update no toca los precios especiales; van por sus setters dedicados.
	if in.Discount != nil {
		if err := uc.products.UpdateDiscount(ctx, product.ID, *in.Discount); err != nil {
			return nil, err
		}
		product.Discount = *in.Discount
	}
	if in.WholesalePrice != nil {
		if err := uc.products.UpdateWholesalePrice(ctx, product.ID, *in.WholesalePrice); err != nil {
			return nil, err
		}
		product.WholesalePrice = *in.WholesalePrice
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.products.Delete(ctx, id)
}

// resolveCategory acepta vacío (sin categoría), un ID existente o una ruta
// jerárquica que se resuelve creando los nodos que falten.
func (uc *ProductUseCase) resolveCategory(ctx context.Context, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if !strings.Contains(value, ">") {
		existing, err := uc.categories.GetByID(ctx, value)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return existing.ID, nil
		}
	}
	return appcatalog.NewPathResolver(uc.categories).Resolve(ctx, value)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		UPC:            p.UPC,
		Description:    p.Description,
		Price:          p.Price,
		CasePack:       p.CasePack,
		Status:         int(p.Status),
		ImageURL:       p.ImageURL,
		CategoryID:     p.CategoryID,
		Discount:       p.Discount,
		WholesalePrice: p.WholesalePrice,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
