package router

import (
	"github.com/gin-gonic/gin"

	"billforge/internal/handler"
	"billforge/internal/middleware"
	"billforge/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Invoice editing
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.DELETE("/:id", invoiceH.Delete)

	// Line items
	invoices.POST("/:id/items", invoiceH.AddLine)
	invoices.PUT("/:id/items/:itemID", invoiceH.UpdateLine)
	invoices.DELETE("/:id/items/:itemID", invoiceH.RemoveLine)

	// Snapshot and exports
	invoices.GET("/:id/snapshot", invoiceH.Snapshot)
	invoices.GET("/:id/export/csv", invoiceH.ExportCSV)
	invoices.GET("/:id/export/xlsx", invoiceH.ExportXLSX)
	invoices.POST("/:id/export/upload", invoiceH.Upload)
	invoices.POST("/:id/send", invoiceH.Send)

	// Rate lookup
	protected.GET("/rates/:code", invoiceH.SuggestRates)

	return r
}
