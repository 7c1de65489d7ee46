package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"labbook/handlers"
	"labbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{})
	return r
}

func TestRegisterRoutes(t *testing.T) {
	registered := map[string]bool{}
	for _, ri := range newEngine().Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /metrics",
		"POST /api/auth/login",
		"GET /api/catalog/tests/:id",
		"POST /api/wizard",
		"PATCH /api/wizard/:id/fields",
		"PUT /api/wizard/:id/date",
		"DELETE /api/wizard/:id",
		"GET /api/bookings",
		"PUT /api/admin/catalog/combos/:id",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newEngine()
	utils.CheckHealth(context.Background(), nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGuardedRoutesRejectAnonymous(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/wizard", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
