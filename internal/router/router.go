package router

import (
	"time"

	"github.com/DoniniDjessa/cercleof-sub000/internal/config"
	"github.com/DoniniDjessa/cercleof-sub000/internal/handler"
	"github.com/DoniniDjessa/cercleof-sub000/internal/infra"
	"github.com/DoniniDjessa/cercleof-sub000/internal/middleware"
	"github.com/DoniniDjessa/cercleof-sub000/internal/repository"
	"github.com/DoniniDjessa/cercleof-sub000/internal/service"
	"github.com/DoniniDjessa/cercleof-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailerCB *infra.CircuitBreaker) *gin.Engine {
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
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	giftCardRepo := repository.NewGiftCardRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	promoSvc := service.NewPromotionService(promoRepo, saleRepo)
	giftCardSvc := service.NewGiftCardService(giftCardRepo, rdb)
	saleSvc := service.NewSaleService(saleRepo, cfg.StoreName)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	checkoutSvc := service.NewCheckoutService(
		saleRepo, productRepo, serviceRepo, clientRepo, promoRepo, userRepo, ledgerRepo,
		promoSvc, giftCardSvc, dispatcher, cfg.StoreName,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	promosH := handler.NewPromotionsHandler(promoSvc)
	giftCardsH := handler.NewGiftCardsHandler(giftCardSvc, giftCardRepo)
	catalogH := handler.NewCatalogHandler(productRepo, serviceRepo, clientRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailerCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, manager, admin — declared per-endpoint.
		// Manual discounts are additionally gated inside the checkout service
		// by the caller's discount capability.
		staff := middleware.RequireRole("cashier", "manager", "admin")

		v1.POST("/checkout", staff, checkoutH.Commit)

		v1.GET("/sales", staff, salesH.List)
		v1.GET("/sales/:id", staff, salesH.Get)
		v1.GET("/sales/:id/receipt", staff, salesH.Receipt)

		v1.POST("/promotions/validate", staff, promosH.Validate)
		v1.POST("/giftcards/validate", staff, giftCardsH.Validate)
		v1.GET("/giftcards/:id/transactions", middleware.RequireRole("manager", "admin"), giftCardsH.History)

		v1.GET("/products", staff, catalogH.ListProducts)
		v1.GET("/products/:id", staff, catalogH.GetProduct)
		v1.GET("/services", staff, catalogH.ListServices)
		v1.GET("/clients/:id", staff, catalogH.GetClient)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
