package router

import (
	"net/http"
	"time"

	"storefront-api/internal/cache"
	"storefront-api/internal/dto"
	"storefront-api/internal/handlers"
	"storefront-api/internal/middleware"
	"storefront-api/internal/service"

	"github.com/gin-contrib/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Cart    *service.CartService
	Orders  *service.OrderService
	Tokens  service.TokenProvider
	Redis   *cache.RedisClient
	Log     *zap.Logger

	AllowedOrigins []string
}

func Router(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := handlers.NewAuthHandler(d.Auth, d.Log)
	productHandler := handlers.NewProductHandler(d.Catalog, d.Log)
	cartHandler := handlers.NewCartHandler(d.Cart, d.Log)
	orderHandler := handlers.NewOrderHandler(d.Orders, d.Log)

	requireAuth := middleware.AuthRequired(d.Tokens, d.Log)
	// Лимит на чувствительные auth-эндпоинты: 10 запросов за 15 минут с IP.
	authLimiter := middleware.RateLimit(d.Redis, d.Log, "rl:auth", 10, 15*time.Minute)

	api := r.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   "0.1.0",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", authLimiter, authHandler.Register)
		auth.POST("/login", authLimiter, authHandler.Login)
		auth.POST("/logout", requireAuth, authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authLimiter, authHandler.ForgotPassword)
		auth.POST("/reset-password", authLimiter, authHandler.ResetPassword)
		auth.GET("/me", requireAuth, authHandler.GetMe)
		auth.PATCH("/me", requireAuth, authHandler.UpdateProfile)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/home", productHandler.GetHomeData)
		products.GET("/:id", productHandler.GetProduct)
	}

	api.GET("/categories", productHandler.ListCategories)

	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PATCH("/items/:itemId", cartHandler.UpdateItem)
		cart.DELETE("/items/:itemId", cartHandler.RemoveItem)
	}

	orders := api.Group("/orders", requireAuth)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Err(dto.CodeNotFound, "Route not found"))
	})

	return r
}
