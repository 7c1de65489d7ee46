package routes

import (
	"net/http"
	"time"

	"labbook/handlers"
	"labbook/middleware"
	"labbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers login, logout and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", middleware.RequireGuest(), hb.Auth.LoginHandler)
		api.POST("/logout", middleware.RequireAuth(), hb.Auth.LogoutHandler)
		api.GET("/session", hb.Auth.SessionHandler)
	}
}

// RegisterCatalogRoutes registers the public catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/categories", hb.Catalog.CategoriesHandler)
		api.GET("/tests", hb.Catalog.ListTestsHandler)
		api.GET("/tests/:id", hb.Catalog.GetTestHandler)
		api.GET("/combos", hb.Catalog.ListCombosHandler)
		api.GET("/combos/:id", hb.Catalog.GetComboHandler)
	}
}

// RegisterWizardRoutes sets up the endpoints of the booking wizard.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	wizardGroup := r.Group("/api/wizard")
	{
		wizardGroup.Use(middleware.RequireAuth())
		wizardGroup.POST("", hb.Wizard.OpenHandler)
		wizardGroup.GET("/:id", hb.Wizard.GetHandler)
		wizardGroup.PATCH("/:id/fields", hb.Wizard.UpdateFieldsHandler)
		wizardGroup.PUT("/:id/date", hb.Wizard.SetDateHandler)
		wizardGroup.POST("/:id/continue", hb.Wizard.ContinueHandler)
		wizardGroup.POST("/:id/back", hb.Wizard.BackHandler)
		wizardGroup.POST("/:id/submit", hb.Wizard.SubmitHandler)
		wizardGroup.DELETE("/:id/error", hb.Wizard.DismissErrorHandler)
		wizardGroup.GET("/:id/summary", hb.Wizard.SummaryHandler)
		wizardGroup.DELETE("/:id", hb.Wizard.CancelHandler)
	}
}

// RegisterBookingRoutes registers the caller's booking history.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.RequireAuth())
		bookingGroup.GET("", hb.Booking.ListBookingsHandler)
		bookingGroup.GET("/:id", hb.Booking.GetBookingHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for catalog maintenance.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin/catalog")
	{
		adminGroup.Use(middleware.RequireAdmin())
		adminGroup.POST("/tests", hb.Admin.CreateTestHandler)
		adminGroup.PUT("/tests/:id", hb.Admin.UpdateTestHandler)
		adminGroup.POST("/combos", hb.Admin.CreateComboHandler)
		adminGroup.PUT("/combos/:id", hb.Admin.UpdateComboHandler)
	}
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "dependencies": status})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
