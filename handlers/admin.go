package handlers

import (
	"net/http"

	"labbook/models"
	"labbook/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates catalog maintenance for admins.
type AdminHandler struct {
	Catalog catalog.CatalogService
}

func NewAdminHandler(svc catalog.CatalogService) *AdminHandler {
	return &AdminHandler{Catalog: svc}
}

// CreateTestHandler handles POST /api/admin/catalog/tests.
func (ah *AdminHandler) CreateTestHandler(c *gin.Context) {
	var in models.LabTestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	test, err := ah.Catalog.CreateTest(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Admin created lab test", zap.String("testID", test.ID))
	c.JSON(http.StatusCreated, test)
}

// UpdateTestHandler handles PUT /api/admin/catalog/tests/:id.
func (ah *AdminHandler) UpdateTestHandler(c *gin.Context) {
	var in models.LabTestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	test, err := ah.Catalog.UpdateTest(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, test)
}

// CreateComboHandler handles POST /api/admin/catalog/combos.
func (ah *AdminHandler) CreateComboHandler(c *gin.Context) {
	var in models.ComboPackageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	combo, err := ah.Catalog.CreateCombo(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Admin created combo package", zap.String("comboID", combo.ID))
	c.JSON(http.StatusCreated, combo)
}

// UpdateComboHandler handles PUT /api/admin/catalog/combos/:id.
func (ah *AdminHandler) UpdateComboHandler(c *gin.Context) {
	var in models.ComboPackageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	combo, err := ah.Catalog.UpdateCombo(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, combo)
}
