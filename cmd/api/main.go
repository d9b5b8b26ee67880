package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ardiwinata/cuepos/internal/application/service"
	"github.com/ardiwinata/cuepos/internal/billing"
	"github.com/ardiwinata/cuepos/internal/config"
	"github.com/ardiwinata/cuepos/internal/infrastructure/database"
	"github.com/ardiwinata/cuepos/internal/infrastructure/repository"
	"github.com/ardiwinata/cuepos/internal/presentation/http/handler"
	"github.com/ardiwinata/cuepos/internal/presentation/http/routes"
	"github.com/ardiwinata/cuepos/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.App.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	outletRepo := repository.NewOutletRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	tableRepo := repository.NewTableRepository(db)
	pricelistRepo := repository.NewPricelistRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	kdsRepo := repository.NewKdsRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	movementRepo := repository.NewCashMovementRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build the in-memory billing ledger and hydrate it from the database
	clock := billing.SystemClock()
	ledger := billing.NewLedger(
		clock,
		repository.NewLedgerCatalog(productRepo),
		repository.NewLedgerPricelists(pricelistRepo),
		repository.NewLedgerStore(sessionRepo, tableRepo),
		log.Logger,
	)

	tables, err := tableRepo.ListAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load tables")
	}
	openSessions, err := sessionRepo.ListOpen(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load open sessions")
	}
	ledger.Restore(tables, openSessions)
	log.Info().Int("tables", len(tables)).Int("open_sessions", len(openSessions)).Msg("Ledger restored")

	// Start the live bill recalculation loop
	recalc := billing.NewRecalculator(ledger, clock, cfg.Billing.RecalcInterval, log.Logger)
	go recalc.Run(ctx)

	// Initialize services
	audit := service.NewAuditTrail(auditRepo, userRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, categoryRepo, unitRepo, audit)
	catalogService := service.NewCatalogService(categoryRepo, unitRepo, audit)
	tableService := service.NewTableService(tableRepo, ledger, audit)
	pricelistService := service.NewPricelistService(pricelistRepo, audit)
	sessionService := service.NewSessionService(ledger, recalc, sessionRepo, audit)
	saleService := service.NewSaleService(saleRepo, productRepo, shiftRepo, kdsRepo, outletRepo, audit)
	kdsService := service.NewKdsService(kdsRepo)
	shiftService := service.NewShiftService(shiftRepo, movementRepo, saleRepo, sessionRepo, userRepo, audit)
	purchaseService := service.NewPurchaseService(purchaseRepo, supplierRepo, productRepo)
	settingsService := service.NewSettingsService(outletRepo, auditRepo)
	dashboardService := service.NewDashboardService(saleRepo, sessionRepo, productRepo, recalc)
	receiptService := service.NewReceiptService(saleRepo, sessionRepo, outletRepo, userRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Product:   handler.NewProductHandler(productService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Table:     handler.NewTableHandler(tableService),
		Pricelist: handler.NewPricelistHandler(pricelistService),
		Session:   handler.NewSessionHandler(sessionService),
		Sale:      handler.NewSaleHandler(saleService),
		Kds:       handler.NewKdsHandler(kdsService),
		Shift:     handler.NewShiftHandler(shiftService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Receipt:   handler.NewReceiptHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", port).Str("env", cfg.App.Env).Msgf("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
