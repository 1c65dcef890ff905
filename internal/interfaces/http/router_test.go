package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalogo-pro/internal/application/importer"
	"github.com/tu-usuario/catalogo-pro/internal/application/usecase"
	"github.com/tu-usuario/catalogo-pro/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/catalogo-pro/internal/interfaces/http"
	"github.com/tu-usuario/catalogo-pro/pkg/logger"
)

// buildTestApp monta la API completa sobre repositorios en memoria.
func buildTestApp() *fiber.App {
	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:      usecase.NewCategoryUseCase(categories, products, nil, usecase.DefaultMaxDepth),
		ProductUC:       usecase.NewProductUseCase(products, categories),
		ProductImporter: importer.NewProductImporter(products, categories, 0, log),
		PriceImporter:   importer.NewPriceImporter(products, 0, log),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAPI_CrearYListarCategorias(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/categories", `{"name":"Bebidas"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	root := decodeBody(t, resp)
	require.NotEmpty(t, root["id"])

	resp = doJSON(t, app, http.MethodPost, "/api/categories",
		`{"name":"Gaseosas","parent_id":"`+root["id"].(string)+`"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/categories", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tree := decodeBody(t, resp)
	items := tree["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "Bebidas", first["name"])
	assert.Len(t, first["children"].([]any), 1)
}

func TestAPI_CrearCategoriaSinNombre(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/categories", `{"name":""}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp)["code"])
}

func TestAPI_MoverBajoDescendienteDevuelve409(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/categories", `{"name":"Bebidas"}`)
	rootID := decodeBody(t, resp)["id"].(string)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/categories", `{"name":"Gaseosas","parent_id":"`+rootID+`"}`)
	childID := decodeBody(t, resp)["id"].(string)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPut, "/api/categories/"+rootID+"/move",
		`{"new_parent_id":"`+childID+`"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CYCLE", decodeBody(t, resp)["code"])
}

func TestAPI_EliminarCategoriaDevuelve204(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/categories", `{"name":"Bebidas"}`)
	rootID := decodeBody(t, resp)["id"].(string)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/categories/"+rootID, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/categories/"+rootID, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CRUDProducto(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/products",
		`{"upc":"100","description":"Cola 2L","price":"3.50","category":"Bebidas>Gaseosas"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	resp.Body.Close()
	id := created["id"].(string)
	require.NotEmpty(t, created["category_id"])

	// UPC duplicado
	resp = doJSON(t, app, http.MethodPost, "/api/products",
		`{"upc":"100","description":"Otra cola","price":"1.00"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPut, "/api/products/"+id, `{"description":"Cola 3L"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cola 3L", decodeBody(t, resp)["description"])
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// uploadCSV arma la petición multipart que espera el endpoint de import.
func uploadCSV(t *testing.T, app *fiber.App, path, csv string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "import.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAPI_ImportDeProductos(t *testing.T) {
	app := buildTestApp()

	csv := "upc,description,price\n100,Cola 2L,3.50\n,Sin UPC,2.00\n300,Papas,2.25\n"
	resp := uploadCSV(t, app, "/api/imports/products", csv)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(2), body["added"])
	assert.Equal(t, float64(1), body["errors"])
	assert.Equal(t, float64(100), body["percentage"])

	records := body["error_records"].([]any)
	require.Len(t, records, 1)
	rec := records[0].(map[string]any)
	assert.Equal(t, float64(2), rec["row"])
	assert.Equal(t, "Missing UPC", rec["reason"])
}

func TestAPI_ImportDePriceOverrides(t *testing.T) {
	app := buildTestApp()

	resp := uploadCSV(t, app, "/api/imports/products", "upc,description,price\n100,Cola 2L,3.50\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = uploadCSV(t, app, "/api/imports/price-overrides", "upc,final_price\n100,2.99\n999,1.00\n")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["updated"])
	assert.Equal(t, float64(1), body["not_found"])
	assert.Equal(t, float64(1), body["errors"])
}

func TestAPI_ImportSinArchivo(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/imports/products", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", decodeBody(t, resp)["code"])
}
