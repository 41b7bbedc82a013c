package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	organizationapp "github.com/retailpos/backend/internal/application/organization"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	stockRepo := persistence.NewGormStockLevelRepository(db.DB)
	receiptRepo := persistence.NewGormGoodsReceiptRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	priceRepo := persistence.NewGormProductPriceRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	unitRepo := persistence.NewGormBusinessUnitRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	priceListRepo := persistence.NewGormPriceListRepository(db.DB)

	// Transaction scopes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	salesScope := persistence.NewGormSalesTransactionScope(db.DB)
	partnerScope := persistence.NewGormPartnerTransactionScope(db.DB)

	// Application services
	stockService := inventoryapp.NewStockService(stockRepo, productRepo, log)
	receiptService := inventoryapp.NewGoodsReceiptService(receiptRepo, stockService, inventoryScope, log)
	priceResolver := salesapp.NewPriceResolver(priceRepo)
	saleService := salesapp.NewSaleService(saleRepo, stockService, priceResolver, salesScope, log)
	customerService := partnerapp.NewCustomerService(customerRepo)
	ledgerService := partnerapp.NewLedgerService(customerRepo, ledgerRepo, partnerScope, log)
	unitService := organizationapp.NewBusinessUnitService(unitRepo)
	catalogService := catalogapp.NewCatalogService(productRepo, supplierRepo, priceListRepo, priceRepo)

	// HTTP handlers
	receiptHandler := handler.NewGoodsReceiptHandler(receiptService)
	stockHandler := handler.NewStockHandler(stockService)
	saleHandler := handler.NewSaleHandler(saleService)
	customerHandler := handler.NewCustomerHandler(customerService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	unitHandler := handler.NewBusinessUnitHandler(unitService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// Gin engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check outside API versioning
	engine.GET("/health", healthHandler(db))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Tenant())

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/receipts", receiptHandler.Create)
	inventoryRoutes.GET("/receipts", receiptHandler.List)
	inventoryRoutes.GET("/receipts/:id", receiptHandler.GetByID)
	inventoryRoutes.PUT("/receipts/:id", receiptHandler.Update)
	inventoryRoutes.POST("/receipts/:id/status", receiptHandler.SetStatus)
	inventoryRoutes.GET("/stock/branches/:branch_id", stockHandler.BranchStock)
	inventoryRoutes.GET("/stock/branches/:branch_id/products/:product_id", stockHandler.CurrentStock)
	inventoryRoutes.GET("/stock/products/:product_id/total", stockHandler.ProductTotal)
	r.Register(inventoryRoutes)

	salesRoutes := router.NewDomainGroup("sales", "/sales")
	salesRoutes.POST("", saleHandler.Create)
	salesRoutes.GET("", saleHandler.List)
	salesRoutes.GET("/:id", saleHandler.GetByID)
	salesRoutes.PUT("/:id", saleHandler.Update)
	salesRoutes.POST("/:id/status", saleHandler.SetStatus)
	salesRoutes.POST("/:id/recompute-totals", saleHandler.RecomputeTotals)
	r.Register(salesRoutes)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.POST("/customers/:id/ledger", ledgerHandler.PostEntry)
	partnerRoutes.GET("/customers/:id/ledger", ledgerHandler.ListEntries)
	partnerRoutes.GET("/customers/:id/balance", ledgerHandler.Balance)
	partnerRoutes.GET("/customers/:id/balance/reconcile", ledgerHandler.Reconcile)
	partnerRoutes.PUT("/ledger/:entry_id", ledgerHandler.UpdateEntry)
	partnerRoutes.DELETE("/ledger/:entry_id", ledgerHandler.DeleteEntry)
	r.Register(partnerRoutes)

	organizationRoutes := router.NewDomainGroup("organization", "/organization")
	organizationRoutes.POST("/units", unitHandler.Create)
	organizationRoutes.GET("/units", unitHandler.List)
	organizationRoutes.GET("/units/:id", unitHandler.GetByID)
	organizationRoutes.PUT("/units/:id", unitHandler.Update)
	organizationRoutes.GET("/units/:id/children", unitHandler.ListChildren)
	r.Register(organizationRoutes)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", catalogHandler.CreateProduct)
	catalogRoutes.GET("/products", catalogHandler.ListProducts)
	catalogRoutes.GET("/products/:id", catalogHandler.GetProduct)
	catalogRoutes.PUT("/products/:id", catalogHandler.UpdateProduct)
	catalogRoutes.PUT("/products/:id/price", catalogHandler.SetProductPrice)
	catalogRoutes.POST("/price-lists", catalogHandler.CreatePriceList)
	catalogRoutes.GET("/price-lists", catalogHandler.ListPriceLists)
	catalogRoutes.POST("/suppliers", catalogHandler.CreateSupplier)
	catalogRoutes.GET("/suppliers/:id", catalogHandler.GetSupplier)
	catalogRoutes.PUT("/suppliers/:id", catalogHandler.UpdateSupplier)
	r.Register(catalogRoutes)

	r.Setup()

	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			reqLog := logger.GetGinLogger(c)
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
