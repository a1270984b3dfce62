// Package gateway is the HTTP surface of the storefront: route wiring,
// auth middleware and the translation between service errors and
// status codes.
package gateway

import (
	"net/http"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Gateway struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	auth     *service.AuthService
	catalog  *service.CatalogService
	cart     *service.CartService
	checkout *service.CheckoutService
	reviews  *service.ReviewService
	admin    *service.AdminService
}

func NewGateway(cfg *config.Config, logger *zap.Logger,
	auth *service.AuthService, catalog *service.CatalogService, cart *service.CartService,
	checkout *service.CheckoutService, reviews *service.ReviewService, admin *service.AdminService) *Gateway {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))
	if len(cfg.CORS.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	return &Gateway{
		config:   cfg,
		logger:   logger,
		router:   router,
		auth:     auth,
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		reviews:  reviews,
		admin:    admin,
	}
}

func (g *Gateway) SetupRoutes() {
	// Health check
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded product images
	g.router.Static(g.config.Upload.PublicPath, g.config.Upload.Dir)

	v1 := g.router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", g.register)
			auth.POST("/login", g.login)
			auth.POST("/forgot-password", g.forgotPassword)
			auth.POST("/reset-password", g.resetPassword)
		}

		products := v1.Group("/products")
		{
			products.GET("", g.listProducts)
			products.GET("/:id", g.getProduct)
			products.GET("/:id/reviews", g.listProductReviews)
		}

		v1.GET("/categories", g.listCategories)

		authed := v1.Group("", g.requireAuth)
		{
			me := authed.Group("/users/me")
			{
				me.GET("", g.getProfile)
				me.PUT("", g.updateProfile)
				me.POST("/addresses", g.addAddress)
				me.PUT("/addresses/:addressId", g.updateAddress)
				me.DELETE("/addresses/:addressId", g.deleteAddress)
				me.PUT("/addresses/:addressId/default", g.setDefaultAddress)
			}

			cart := authed.Group("/cart")
			{
				cart.GET("", g.getCart)
				cart.POST("", g.addCartItem)
				cart.PUT("/:productId", g.updateCartItem)
				cart.DELETE("/:productId", g.removeCartItem)
				cart.POST("/merge", g.mergeGuestCart)
				cart.POST("/clear", g.clearCart)
			}

			orders := authed.Group("/orders")
			{
				orders.POST("", g.createOrder)
				orders.GET("", g.listOrders)
				orders.GET("/:id", g.getOrder)
			}

			authed.POST("/payment/verify", g.verifyPayment)

			reviews := authed.Group("/reviews")
			{
				reviews.POST("", g.createReview)
				reviews.PUT("/:id", g.updateReview)
				reviews.DELETE("/:id", g.deleteReview)
			}
		}

		admin := v1.Group("/admin", g.requireAuth, g.requireAdmin)
		{
			admin.GET("/dashboard", g.dashboard)
			admin.GET("/orders", g.adminListOrders)
			admin.PUT("/orders/:id/status", g.updateOrderStatus)
			admin.POST("/products", g.createProduct)
			admin.PUT("/products/:id", g.updateProduct)
			admin.DELETE("/products/:id", g.deleteProduct)
			admin.POST("/categories", g.createCategory)
			admin.PUT("/categories/:id", g.updateCategory)
			admin.DELETE("/categories/:id", g.deleteCategory)
			admin.POST("/upload", g.uploadImage)
		}
	}
}

func (g *Gateway) Start() error {
	addr := g.config.Server.Addr()
	g.logger.Info("Gateway starting", zap.String("address", addr))
	return g.router.Run(addr)
}

// Router exposes the engine for tests.
func (g *Gateway) Router() *gin.Engine {
	return g.router
}
