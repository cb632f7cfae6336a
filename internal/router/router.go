package router

import (
	"time"

	"briqtrack/internal/config"
	"briqtrack/internal/handler"
	"briqtrack/internal/middleware"
	"briqtrack/internal/repository"
	"briqtrack/internal/service"
	"briqtrack/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	supplyRepo := repository.NewSupplyLogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	actionRepo := repository.NewActionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	materialSvc := service.NewMaterialService(materialRepo, movementRepo, dispatcher, cfg.LowStockThreshold)
	supplierSvc := service.NewSupplierService(supplierRepo)
	supplySvc := service.NewSupplyService(supplyRepo, supplierRepo, materialRepo, materialSvc)
	orderSvc := service.NewOrderService(orderRepo, supplierRepo, materialRepo, dispatcher)
	machineSvc := service.NewMachineService(machineRepo)
	usageSvc := service.NewUsageService(usageRepo, machineRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	materialsH := handler.NewMaterialsHandler(materialSvc)
	movementsH := handler.NewMovementsHandler(movementRepo)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	suppliesH := handler.NewSuppliesHandler(supplySvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	machinesH := handler.NewMachinesHandler(machineSvc)
	usageH := handler.NewUsageHandler(usageSvc)
	productsH := handler.NewProductsHandler(productRepo)
	customersH := handler.NewCustomersHandler(customerRepo)
	actionsH := handler.NewActionsHandler(actionRepo, customerRepo, productRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")

	// Auth stays public even when the rest of the API is protected
	api.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// The dashboard historically ran without auth; AUTH_ENABLED turns the
	// JWT gate on for everything below.
	if cfg.AuthEnabled {
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	}

	materials := api.Group("/materials")
	{
		materials.POST("", materialsH.Create)
		materials.GET("", materialsH.List)
		materials.POST("/reduce", materialsH.Reduce)
		materials.GET("/:id", materialsH.Get)
		materials.PUT("/:id", materialsH.Update)
		materials.DELETE("/:id", materialsH.Delete)
		materials.GET("/:id/low-stock", materialsH.LowStock)
	}

	api.GET("/stock-movements", movementsH.List)

	suppliers := api.Group("/suppliers")
	{
		suppliers.POST("", suppliersH.Create)
		suppliers.GET("", suppliersH.List)
		suppliers.GET("/:id", suppliersH.Get)
		suppliers.PUT("/:id", suppliersH.Update)
		suppliers.DELETE("/:id", suppliersH.Delete)
	}

	supplies := api.Group("/supplies")
	{
		supplies.POST("", suppliesH.Create)
		supplies.GET("", suppliesH.List)
		supplies.GET("/:id", suppliesH.Get)
	}

	// Singular path kept for client compatibility
	orders := api.Group("/order")
	{
		orders.POST("", ordersH.Create)
		orders.GET("", ordersH.List)
		orders.GET("/:id", ordersH.Get)
		orders.PUT("/:id", ordersH.Update)
		orders.DELETE("/:id", ordersH.Delete)
	}

	machines := api.Group("/machines")
	{
		machines.POST("/add", machinesH.Add)
		machines.GET("", machinesH.List)
		machines.PUT("/:id", machinesH.Update)
	}

	usage := api.Group("/machine-usage")
	{
		usage.POST("/add", usageH.Add)
		usage.GET("", usageH.List)
		usage.PUT("/:id", usageH.Update)
		usage.DELETE("/:id", usageH.Delete)
	}

	products := api.Group("/products")
	{
		products.POST("", productsH.Create)
		products.GET("", productsH.List)
		products.GET("/:id", productsH.Get)
		products.PUT("/:id", productsH.Update)
		products.DELETE("/:id", productsH.Delete)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", customersH.Create)
		customers.GET("", customersH.List)
		customers.GET("/:id", customersH.Get)
		customers.PUT("/:id", customersH.Update)
		customers.DELETE("/:id", customersH.Delete)
	}

	actions := api.Group("/actions")
	{
		actions.POST("", actionsH.Create)
		actions.GET("/customer/:customerId", actionsH.ListByCustomer)
	}

	api.GET("/analytics/efficiency", usageH.Efficiency)

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
