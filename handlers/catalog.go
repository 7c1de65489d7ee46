package handlers

import (
	"net/http"
	"strconv"

	"labbook/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public lab catalog.
type CatalogHandler struct {
	Service catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

// queryInt reads an integer query parameter; absent or malformed values yield 0.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// CategoriesHandler handles GET /api/catalog/categories.
func (h *CatalogHandler) CategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Categories())
}

// ListTestsHandler handles GET /api/catalog/tests.
func (h *CatalogHandler) ListTestsHandler(c *gin.Context) {
	tests, err := h.Service.ListTests(c.Request.Context(), catalog.TestFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tests)
}

// GetTestHandler handles GET /api/catalog/tests/:id.
func (h *CatalogHandler) GetTestHandler(c *gin.Context) {
	test, err := h.Service.GetTest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

// ListCombosHandler handles GET /api/catalog/combos.
func (h *CatalogHandler) ListCombosHandler(c *gin.Context) {
	combos, err := h.Service.ListCombos(c.Request.Context(), catalog.ComboFilter{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, combos)
}

// GetComboHandler handles GET /api/catalog/combos/:id.
func (h *CatalogHandler) GetComboHandler(c *gin.Context) {
	combo, err := h.Service.GetCombo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, combo)
}
