package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ardiwinata/cuepos/internal/config"
	"github.com/ardiwinata/cuepos/internal/presentation/http/handler"
	"github.com/ardiwinata/cuepos/internal/presentation/http/middleware"
	"github.com/ardiwinata/cuepos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Catalog   *handler.CatalogHandler
	Table     *handler.TableHandler
	Pricelist *handler.PricelistHandler
	Session   *handler.SessionHandler
	Sale      *handler.SaleHandler
	Kds       *handler.KdsHandler
	Shift     *handler.ShiftHandler
	Purchase  *handler.PurchaseHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
	Receipt   *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(&deps.Cfg.RateLimit)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", middleware.RequirePermission("view-dashboard"), h.Dashboard.Stats)

	// Tables and live floor view
	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.GET("/:id", h.Table.Get)
		tables.POST("", middleware.RequirePermission("manage-tables"), h.Table.Create)
		tables.PUT("/:id", middleware.RequirePermission("manage-tables"), h.Table.Update)
		tables.DELETE("/:id", middleware.RequirePermission("manage-tables"), h.Table.Delete)
	}

	// Pricelist packages
	pricelists := protected.Group("/pricelists")
	{
		pricelists.GET("", h.Pricelist.List)
		pricelists.GET("/:id", h.Pricelist.Get)
		pricelists.POST("", middleware.RequirePermission("manage-pricelists"), h.Pricelist.Create)
		pricelists.PUT("/:id", middleware.RequirePermission("manage-pricelists"), h.Pricelist.Update)
		pricelists.DELETE("/:id", middleware.RequirePermission("manage-pricelists"), h.Pricelist.Delete)
	}

	// Table sessions
	sessions := protected.Group("/sessions")
	sessions.Use(middleware.RequirePermission("manage-sessions"))
	{
		sessions.GET("/live", h.Session.Live)
		sessions.GET("/history", h.Session.History)
		sessions.GET("/:id", h.Session.Get)
		sessions.POST("", h.Session.Start)
		sessions.POST("/:id/pause", h.Session.Pause)
		sessions.POST("/:id/resume", h.Session.Resume)
		sessions.POST("/:id/charges", h.Session.AttachCharge)
		sessions.POST("/:id/stop", h.Session.Stop)
		sessions.GET("/:id/receipt", h.Receipt.SessionReceipt)
	}

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequirePermission("manage-products"), h.Product.Create)
		products.PUT("/:id", middleware.RequirePermission("manage-products"), h.Product.Update)
		products.DELETE("/:id", middleware.RequirePermission("manage-products"), h.Product.Delete)
	}

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", middleware.RequirePermission("manage-categories"), h.Catalog.CreateCategory)
		categories.PUT("/:id", middleware.RequirePermission("manage-categories"), h.Catalog.UpdateCategory)
		categories.DELETE("/:id", middleware.RequirePermission("manage-categories"), h.Catalog.DeleteCategory)
	}

	// Units
	units := protected.Group("/units")
	{
		units.GET("", h.Catalog.ListUnits)
		units.POST("", middleware.RequirePermission("manage-units"), h.Catalog.CreateUnit)
		units.PUT("/:id", middleware.RequirePermission("manage-units"), h.Catalog.UpdateUnit)
		units.DELETE("/:id", middleware.RequirePermission("manage-units"), h.Catalog.DeleteUnit)
	}

	// POS sales
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("", h.Sale.Create)
		sales.POST("/:id/void", h.Sale.Void)
		sales.GET("/:id/receipt", h.Receipt.SaleReceipt)
	}

	// Kitchen display
	kds := protected.Group("/kds")
	kds.Use(middleware.RequirePermission("manage-kds"))
	{
		kds.GET("/orders", h.Kds.ListActive)
		kds.GET("/orders/history", h.Kds.ListByDate)
		kds.PUT("/orders/:id/items/:itemId", h.Kds.UpdateItemStatus)
	}

	// Cashier shifts
	shifts := protected.Group("/shifts")
	shifts.Use(middleware.RequirePermission("manage-shifts"))
	{
		shifts.GET("", h.Shift.List)
		shifts.GET("/current", h.Shift.Current)
		shifts.GET("/:id", h.Shift.Get)
		shifts.POST("", h.Shift.Open)
		shifts.POST("/current/movements", h.Shift.RecordMovement)
		shifts.POST("/current/close", h.Shift.Close)
	}

	// Suppliers and purchases
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequirePermission("manage-purchases"))
	{
		suppliers.GET("", h.Purchase.ListSuppliers)
		suppliers.POST("", h.Purchase.CreateSupplier)
		suppliers.PUT("/:id", h.Purchase.UpdateSupplier)
		suppliers.DELETE("/:id", h.Purchase.DeleteSupplier)
	}

	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequirePermission("manage-purchases"))
	{
		purchases.GET("", h.Purchase.List)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("", h.Purchase.Create)
		purchases.POST("/:id/receive", h.Purchase.Receive)
	}

	// Settings and audit trail
	settings := protected.Group("/settings")
	settings.Use(middleware.RequirePermission("manage-settings"))
	{
		settings.GET("/outlet", h.Settings.GetOutlet)
		settings.PUT("/outlet", h.Settings.UpdateOutlet)
		settings.GET("/audit-logs", h.Settings.ListAuditLogs)
	}

	// Staff accounts
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
