package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"volnasup.ru/shop/internal/config"
	"volnasup.ru/shop/internal/http/cartcookie"
	"volnasup.ru/shop/internal/http/handlers"
	adminhandlers "volnasup.ru/shop/internal/http/handlers/admin"
	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/mailer"
	"volnasup.ru/shop/internal/modules/cart"
	"volnasup.ru/shop/internal/modules/checkout"
	"volnasup.ru/shop/internal/modules/email"
	"volnasup.ru/shop/internal/modules/orders"
	"volnasup.ru/shop/internal/modules/products"
	"volnasup.ru/shop/internal/modules/users"
	"volnasup.ru/shop/internal/storage"
)

// NewRouter wires the whole HTTP surface: storefront under /api, back
// office under /api/admin.
func NewRouter(cfg *config.Config, log *slog.Logger, db *gorm.DB, store storage.Storage, mail mailer.Service) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.ErrorHandler(log))

	sessCfg := middleware.SessionCfg{
		DB:         db,
		CookieName: "vs_session",
		Secure:     cfg.SecureCookies,
		TTL:        cfg.SessionTTL,
	}
	r.Use(middleware.SessionMiddleware(sessCfg))

	cartCodec := cartcookie.New(cfg.CookieSecret, "vs_cart", cfg.SecureCookies)

	// Catalog: repo, optionally behind Redis.
	productsRepo := products.NewRepo(db)
	var catalog products.Catalog = productsRepo
	var catalogCache *products.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		catalogCache = products.NewCache(productsRepo, rdb, cfg.CacheTTL, log)
		catalog = catalogCache
	}
	productsSvc := products.NewService(catalog)

	cartRepo := cart.NewRepo(db)
	cartSvc := cart.NewService(db, cartRepo)

	emailSvc := email.NewService(mail, cfg.SMTP.From, cfg.SMTP.FromName)

	var invalidator checkout.CatalogInvalidator
	if catalogCache != nil {
		invalidator = catalogCache
	}
	checkoutSvc := checkout.NewService(db, emailSvc, invalidator, log)

	usersSvc := users.NewService(users.NewRepo(db))

	ordersRepo := orders.NewRepo(db)
	ctrl := orders.NewController(ordersRepo, cfg.ShopLoc)
	ctrl.OnChange(func() {
		log.Debug("admin order listing changed")
	})
	wf := orders.NewWorkflow(ctrl)

	productsH := handlers.NewProductsHandler(productsSvc)
	cartH := handlers.NewCartHandler(cartRepo, cartSvc, cartCodec)
	checkoutH := handlers.NewCheckoutHandler(checkoutSvc, cartRepo, cartCodec)
	authH := handlers.NewAuthHandler(usersSvc, sessCfg, cartRepo, cartCodec)
	ordersH := handlers.NewOrdersHandler(ordersRepo, cfg.ShopLoc)
	dashH := handlers.NewAdminDashboardHandler(ordersRepo)
	adminOrdersH := adminhandlers.NewOrdersHandler(ctrl, wf, ordersRepo, cfg.ShopLoc)

	var adminCatalog interface{ Invalidate(context.Context) }
	if catalogCache != nil {
		adminCatalog = catalogCache
	}
	adminProductsH := adminhandlers.NewProductsHandler(productsRepo, store, adminCatalog)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.LocalURLBase, cfg.Storage.LocalDir)
	}

	api := r.Group("/api")
	{
		api.GET("/products", productsH.List)
		api.GET("/products/:slug", productsH.Detail)

		api.GET("/cart", cartH.Get)
		api.POST("/cart/items", cartH.Add)
		api.PATCH("/cart/items", cartH.Update)
		api.DELETE("/cart/items/:variantId", cartH.Remove)

		api.POST("/checkout", checkoutH.Post)

		api.POST("/auth/register", authH.Register)
		api.POST("/auth/login", authH.Login)
		api.POST("/auth/logout", authH.Logout)
		api.GET("/auth/me", middleware.RequireAuth(), authH.Me)

		api.GET("/orders/:id", ordersH.Detail)
	}

	admin := r.Group("/api/admin", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", dashH.Get)

		admin.GET("/orders", adminOrdersH.List)
		admin.GET("/orders/editor", adminOrdersH.EditorState)
		admin.POST("/orders/editor/cancel", adminOrdersH.CancelEdit)
		admin.GET("/orders/:id", adminOrdersH.Detail)
		admin.POST("/orders/:id/status", adminOrdersH.UpdateStatus)

		admin.GET("/products", adminProductsH.List)
		admin.POST("/products", adminProductsH.Create)
		admin.GET("/products/:id", adminProductsH.Get)
		admin.PUT("/products/:id", adminProductsH.Update)
		admin.DELETE("/products/:id", adminProductsH.Delete)
		admin.POST("/products/:id/variants", adminProductsH.AddVariant)
		admin.PUT("/products/:id/variants/:variantId", adminProductsH.UpdateVariant)
		admin.DELETE("/products/:id/variants/:variantId", adminProductsH.DeleteVariant)
		admin.POST("/products/:id/images", adminProductsH.UploadImage)
		admin.DELETE("/products/:id/images/:imageId", adminProductsH.DeleteImage)
	}

	return r
}
