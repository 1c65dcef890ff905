package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalogo-pro/internal/application/dto"
	"github.com/tu-usuario/catalogo-pro/internal/application/usecase"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/domain/entity"
	"github.com/tu-usuario/catalogo-pro/internal/infrastructure/memory"
)

// cascadeSpy registra las invocaciones de la cascada atómica.
type cascadeSpy struct {
	calls [][]string
}

func (s *cascadeSpy) CascadeDelete(_ context.Context, categoryIDs []string) error {
	s.calls = append(s.calls, categoryIDs)
	return nil
}

func seedCategory(t *testing.T, repo *memory.CategoryRepo, id, name, parentID string) {
	t.Helper()
	now := time.Now()
	err := repo.Create(context.Background(), &entity.Category{
		ID: id, Name: name, ParentID: parentID, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
}

// Árbol de prueba: Bebidas > Gaseosas > Colas, Bebidas > Jugos, Snacks.
func seedTree(t *testing.T, repo *memory.CategoryRepo) {
	t.Helper()
	seedCategory(t, repo, "c1", "Bebidas", "")
	seedCategory(t, repo, "c2", "Gaseosas", "c1")
	seedCategory(t, repo, "c3", "Colas", "c2")
	seedCategory(t, repo, "c4", "Jugos", "c1")
	seedCategory(t, repo, "c5", "Snacks", "")
}

func newCategoryUC(categories *memory.CategoryRepo, products *memory.ProductRepo, cascade usecase.CascadeDeleter) *usecase.CategoryUseCase {
	return usecase.NewCategoryUseCase(categories, products, cascade, usecase.DefaultMaxDepth)
}

func TestCategoryCreate_RaizYHijo(t *testing.T) {
	categories := memory.NewCategoryRepository()
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)
	ctx := context.Background()

	root, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	assert.Empty(t, root.ParentID)

	child, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Gaseosas", ParentID: root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, child.ParentID)
}

func TestCategoryCreate_NombreVacio(t *testing.T) {
	uc := newCategoryUC(memory.NewCategoryRepository(), memory.NewProductRepository(), nil)

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryCreate_PadreInexistente(t *testing.T) {
	uc := newCategoryUC(memory.NewCategoryRepository(), memory.NewProductRepository(), nil)

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Gaseosas", ParentID: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryCreate_ProfundidadMaxima(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)
	ctx := context.Background()

	// c3 ya está en el nivel 2 (tercero): un hijo suyo excede el máximo.
	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Colas Light", ParentID: "c3"})
	assert.ErrorIs(t, err, domain.ErrMaxDepth)

	// Bajo c2 (nivel 1) todavía cabe un nivel más.
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Aguas", ParentID: "c2"})
	assert.NoError(t, err)
}

func TestCategoryUpdate_Renombra(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)

	name := "Bebidas y Licores"
	updated, err := uc.Update(context.Background(), "c1", dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	stored, err := categories.GetByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)
}

func TestCategoryUpdate_NombreInvalidoNoAplicaElMove(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)
	ctx := context.Background()

	// Nombre en blanco y reparent en la misma petición: debe rechazarse
	// completa, sin persistir el cambio de padre.
	name := "   "
	parent := "c5"
	_, err := uc.Update(ctx, "c4", dto.UpdateCategoryRequest{Name: &name, ParentID: &parent})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := categories.GetByID(ctx, "c4")
	require.NoError(t, err)
	assert.Equal(t, "c1", stored.ParentID, "el rechazo no debe dejar el move aplicado")
	assert.Equal(t, "Jugos", stored.Name)
}

func TestCategoryUpdate_RenombraYMueveJunto(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)
	ctx := context.Background()

	name := "Jugos Naturales"
	parent := "c5"
	updated, err := uc.Update(ctx, "c4", dto.UpdateCategoryRequest{Name: &name, ParentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "c5", updated.ParentID)

	stored, err := categories.GetByID(ctx, "c4")
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)
	assert.Equal(t, "c5", stored.ParentID)
}

func TestCategoryMove_ASiMismaEsCiclo(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)

	_, err := uc.Move(context.Background(), "c1", "c1")
	assert.ErrorIs(t, err, domain.ErrCycle)
}

func TestCategoryMove_BajoDescendienteEsCiclo(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)
	ctx := context.Background()

	_, err := uc.Move(ctx, "c1", "c3")
	assert.ErrorIs(t, err, domain.ErrCycle)

	// El árbol debe quedar intacto tras el rechazo.
	stored, err := categories.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, stored.ParentID, "c1 sigue siendo raíz")
}

func TestCategoryMove_ExcedeProfundidad(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)
	ctx := context.Background()

	// c1 arrastra dos niveles de descendientes; colgarla de c5 (nivel 0)
	// dejaría a c3 en el nivel 3.
	_, err := uc.Move(ctx, "c1", "c5")
	assert.ErrorIs(t, err, domain.ErrMaxDepth)

	stored, err := categories.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, stored.ParentID)
}

func TestCategoryMove_SubarbolValido(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)
	ctx := context.Background()

	// c2 arrastra a c3: bajo c5 quedan en niveles 1 y 2, dentro del máximo.
	moved, err := uc.Move(ctx, "c2", "c5")
	require.NoError(t, err)
	assert.Equal(t, "c5", moved.ParentID)

	stored, err := categories.GetByID(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "c5", stored.ParentID)
}

func TestCategoryMove_ARaiz(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)

	moved, err := uc.Move(context.Background(), "c3", "")
	require.NoError(t, err)
	assert.Empty(t, moved.ParentID)
}

func TestCategoryMove_PadreInexistente(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)

	_, err := uc.Move(context.Background(), "c3", "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryDelete_CascadaSecuencial(t *testing.T) {
	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()
	seedTree(t, categories)

	now := time.Now()
	require.NoError(t, products.Create(context.Background(), &entity.Product{
		ID: "p1", UPC: "100", Description: "Cola 2L", CategoryID: "c3", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, products.Create(context.Background(), &entity.Product{
		ID: "p2", UPC: "200", Description: "Papas", CategoryID: "c5", CreatedAt: now, UpdatedAt: now,
	}))

	uc := newCategoryUC(categories, products, nil)
	require.NoError(t, uc.Delete(context.Background(), "c1"))

	// Subárbol completo fuera: c1, c2, c3 y c4. Snacks sobrevive.
	assert.Equal(t, 1, categories.Count())
	survivor, err := categories.GetByID(context.Background(), "c5")
	require.NoError(t, err)
	require.NotNil(t, survivor)

	// El producto de la subcategoría borrada cae con ella; el otro queda.
	gone, err := products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, gone)
	kept, err := products.GetByID(context.Background(), "p2")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestCategoryDelete_PrefiereCascadaAtomica(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	spy := &cascadeSpy{}
	uc := newCategoryUC(categories, memory.NewProductRepository(), spy)

	require.NoError(t, uc.Delete(context.Background(), "c1"))

	require.Len(t, spy.calls, 1)
	assert.ElementsMatch(t, []string{"c1", "c2", "c3", "c4"}, spy.calls[0])
}

func TestCategoryDelete_Inexistente(t *testing.T) {
	uc := newCategoryUC(memory.NewCategoryRepository(), memory.NewProductRepository(), nil)
	assert.ErrorIs(t, uc.Delete(context.Background(), "fantasma"), domain.ErrNotFound)
}

func TestCategoryTree_HermanosOrdenadosPorNombre(t *testing.T) {
	categories := memory.NewCategoryRepository()
	seedTree(t, categories)
	uc := newCategoryUC(categories, memory.NewProductRepository(), nil)

	tree, err := uc.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree.Items, 2)
	assert.Equal(t, "Bebidas", tree.Items[0].Name)
	assert.Equal(t, "Snacks", tree.Items[1].Name)

	require.Len(t, tree.Items[0].Children, 2)
	assert.Equal(t, "Gaseosas", tree.Items[0].Children[0].Name)
	assert.Equal(t, "Jugos", tree.Items[0].Children[1].Name)
	require.Len(t, tree.Items[0].Children[0].Children, 1)
	assert.Equal(t, "Colas", tree.Items[0].Children[0].Children[0].Name)
}
