package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/markethub/backend/internal/application/cart"
	catalogapp "github.com/markethub/backend/internal/application/catalog"
	identityapp "github.com/markethub/backend/internal/application/identity"
	orderapp "github.com/markethub/backend/internal/application/order"
	shippingapp "github.com/markethub/backend/internal/application/shipping"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/infrastructure/persistence"
	"github.com/markethub/backend/internal/infrastructure/storage"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
	"github.com/markethub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting MarketHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis when configured, in-process fallback otherwise.
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisBlacklist.Close()
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist; revoked tokens are forgotten on restart")
	}

	imageStore, err := storage.NewImageStore(cfg.Upload, log)
	if err != nil {
		log.Fatal("Failed to initialize image store", zap.Error(err))
	}

	// Background reaper for abandoned staged uploads.
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	reaper := storage.NewTempReaper(imageStore, cfg.Upload.TempFileTTL, cfg.Upload.ReapInterval, log)
	go reaper.Run(reaperCtx)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Transaction scopes
	catalogScope := persistence.NewGormCatalogScope(db.DB)
	shippingScope := persistence.NewGormShippingScope(db.DB)
	identityScope := persistence.NewGormIdentityScope(db.DB)

	// Application services
	authService := identityapp.NewAuthService(userRepo, partnerRepo, identityScope, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(partnerRepo, productRepo, catalogScope, imageStore, log)
	couponService := catalogapp.NewCouponService(partnerRepo, couponRepo, log)
	browseService := catalogapp.NewBrowseService(productRepo, categoryRepo)
	addressService := shippingapp.NewAddressService(addressRepo, shippingScope, log)
	cartService := cartapp.NewService(cartRepo, productRepo)
	orderService := orderapp.NewService(partnerRepo, orderRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	uploadHandler := handler.NewUploadHandler(imageStore, cfg.Upload.MaxFilesPerRequest, log)
	productHandler := handler.NewProductHandler(productService)
	couponHandler := handler.NewCouponHandler(couponService)
	browseHandler := handler.NewBrowseHandler(browseService)
	shippingHandler := handler.NewShippingHandler(addressService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	// Stored and staged images are served straight off disk.
	engine.Static(cfg.Upload.BaseURL+"/images", filepath.Join(cfg.Upload.Root, "images"))
	engine.Static(cfg.Upload.BaseURL+"/temp", filepath.Join(cfg.Upload.Root, "temp"))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	engine.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/products",
			"/api/v1/products/search",
			"/api/v1/categories",
		},
		SkipPathPrefixes: []string{
			cfg.Upload.BaseURL + "/",
			"/api/v1/products/",
			"/api/v1/categories/",
		},
		Logger: log,
	}))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/profile", authHandler.GetProfile)
	authRoutes.PUT("/profile", authHandler.UpdateProfile)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	browseRoutes := router.NewDomainGroup("browse", "")
	browseRoutes.GET("/products", browseHandler.ListProducts)
	browseRoutes.GET("/products/search", browseHandler.SearchProducts)
	browseRoutes.GET("/products/:id", browseHandler.GetProduct)
	browseRoutes.GET("/categories", browseHandler.ListCategories)
	browseRoutes.GET("/categories/:slug", browseHandler.GetCategory)
	browseRoutes.GET("/categories/:slug/products", browseHandler.ListCategoryProducts)

	sellerOnly := middleware.RequireRoles(string(identity.RolePartner), string(identity.RoleAdmin))

	uploadRoutes := router.NewDomainGroup("upload", "/upload")
	uploadRoutes.Use(sellerOnly)
	uploadRoutes.POST("/image", uploadHandler.UploadImage)
	uploadRoutes.POST("/images", uploadHandler.UploadImages)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.Use(sellerOnly)
	partnerRoutes.GET("/orders", orderHandler.ListPartnerOrders)

	partnerProducts := partnerRoutes.Group("partner-products", "/products")
	partnerProducts.GET("", productHandler.List)
	partnerProducts.POST("", productHandler.Create)
	partnerProducts.GET("/:id", productHandler.Get)
	partnerProducts.PUT("/:id", productHandler.Update)
	partnerProducts.DELETE("/:id", productHandler.Delete)

	partnerCoupons := partnerRoutes.Group("partner-coupons", "/coupons")
	partnerCoupons.GET("", couponHandler.List)
	partnerCoupons.POST("", couponHandler.Create)
	partnerCoupons.PUT("/:id", couponHandler.Update)
	partnerCoupons.DELETE("/:id", couponHandler.Delete)

	shippingRoutes := router.NewDomainGroup("shipping", "/shipping")
	shippingRoutes.GET("", shippingHandler.List)
	shippingRoutes.POST("", shippingHandler.Create)
	shippingRoutes.PUT("/:id", shippingHandler.Update)
	shippingRoutes.DELETE("/:id", shippingHandler.Delete)

	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.List)
	cartRoutes.POST("", cartHandler.Add)
	cartRoutes.PUT("/:id", cartHandler.Update)
	cartRoutes.DELETE("/:id", cartHandler.Delete)

	for _, group := range []*router.DomainGroup{
		authRoutes, browseRoutes, uploadRoutes, partnerRoutes, shippingRoutes, cartRoutes,
	} {
		r.Register(group)
		log.Debug("Registered route group", zap.String("group", group.Name()))
	}

	r.Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopReaper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.FromGin(c)
		if err := db.Ping(); err != nil {
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
