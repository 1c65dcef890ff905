package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/tu-usuario/catalogo-pro/internal/application/catalog"
	"github.com/tu-usuario/catalogo-pro/internal/domain"
	"github.com/tu-usuario/catalogo-pro/internal/infrastructure/memory"
)

func TestResolve_CreaLaJerarquiaCompleta(t *testing.T) {
	repo := memory.NewCategoryRepository()
	resolver := appcatalog.NewPathResolver(repo)
	ctx := context.Background()

	leafID, err := resolver.Resolve(ctx, "Bebidas>Gaseosas>Colas")
	require.NoError(t, err)
	require.NotEmpty(t, leafID)
	assert.Equal(t, 3, repo.Count(), "debe crear los tres niveles")

	leaf, err := repo.GetByID(ctx, leafID)
	require.NoError(t, err)
	require.NotNil(t, leaf)
	assert.Equal(t, "Colas", leaf.Name)

	parent, err := repo.GetByID(ctx, leaf.ParentID)
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, "Gaseosas", parent.Name)

	root, err := repo.GetByID(ctx, parent.ParentID)
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, "Bebidas", root.Name)
	assert.True(t, root.IsRoot())
}

func TestResolve_EsIdempotente(t *testing.T) {
	repo := memory.NewCategoryRepository()
	resolver := appcatalog.NewPathResolver(repo)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "Bebidas>Gaseosas")
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, "Bebidas>Gaseosas")
	require.NoError(t, err)

	assert.Equal(t, first, second, "misma ruta, mismo ID")
	assert.Equal(t, 2, repo.Count(), "no debe crear duplicados")
}

func TestResolve_MatchCaseInsensitive(t *testing.T) {
	repo := memory.NewCategoryRepository()
	ctx := context.Background()

	first, err := appcatalog.NewPathResolver(repo).Resolve(ctx, "Bebidas>Gaseosas")
	require.NoError(t, err)

	// Resolver nuevo: sin cache, el match debe salir del repositorio.
	second, err := appcatalog.NewPathResolver(repo).Resolve(ctx, "BEBIDAS>gaseosas")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, repo.Count())
}

func TestResolve_ReusaPrefijosCompartidos(t *testing.T) {
	repo := memory.NewCategoryRepository()
	resolver := appcatalog.NewPathResolver(repo)
	ctx := context.Background()

	colas, err := resolver.Resolve(ctx, "Bebidas>Gaseosas>Colas")
	require.NoError(t, err)
	jugos, err := resolver.Resolve(ctx, "Bebidas>Jugos")
	require.NoError(t, err)

	assert.NotEqual(t, colas, jugos)
	assert.Equal(t, 4, repo.Count(), "Bebidas se comparte entre ambas rutas")
}

func TestResolve_RecortaEspaciosEnSegmentos(t *testing.T) {
	repo := memory.NewCategoryRepository()
	resolver := appcatalog.NewPathResolver(repo)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "Bebidas > Gaseosas")
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, "Bebidas>Gaseosas")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_RutasInvalidas(t *testing.T) {
	repo := memory.NewCategoryRepository()
	resolver := appcatalog.NewPathResolver(repo)
	ctx := context.Background()

	cases := []struct {
		name string
		path string
	}{
		{"vacía", ""},
		{"segmento vacío", "Bebidas>>Colas"},
		{"segmento en blanco", "Bebidas> >Colas"},
		{"más de tres niveles", "A>B>C>D"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolver.Resolve(ctx, tc.path)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, repo.Count(), "una ruta inválida no debe crear nada")
}
