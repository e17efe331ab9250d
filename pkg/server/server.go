package server

import (
	"fmt"
	"net/http"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/repository"
	"github.com/example/storefront/pkg/service"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	store    *repository.Store
	cache    *repository.RedisRepository
	checkout *service.CheckoutService
	auth     *service.AuthService
	router   *gin.Engine
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	store *repository.Store,
	cache *repository.RedisRepository,
	checkout *service.CheckoutService,
	auth *service.AuthService,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config:   cfg,
		logger:   logger,
		store:    store,
		cache:    cache,
		checkout: checkout,
		auth:     auth,
		router:   router,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := AuthRequired(s.cache, s.logger)

	api := s.router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
			auth.GET("/profile", authRequired, s.getProfile)
		}

		products := api.Group("/products")
		{
			products.GET("", s.listProducts)
			products.GET("/featured", s.listFeaturedProducts)
			products.GET("/categories", s.listCategories)
			products.GET("/:id", s.getProduct)
		}

		cart := api.Group("/cart", authRequired)
		{
			cart.GET("", s.getCart)
			cart.POST("/add", s.addToCart)
			cart.PUT("/:productId", s.updateCartItem)
			cart.DELETE("/:productId", s.removeFromCart)
			cart.DELETE("", s.clearCart)
		}

		wishlist := api.Group("/wishlist", authRequired)
		{
			wishlist.GET("", s.getWishlist)
			wishlist.POST("/add", s.addToWishlist)
			wishlist.DELETE("/:productId", s.removeFromWishlist)
			wishlist.GET("/check/:productId", s.checkWishlistStatus)
		}

		users := api.Group("/users", authRequired)
		{
			users.PUT("/profile", s.updateProfile)
			users.GET("/addresses", s.listAddresses)
			users.POST("/addresses", s.addAddress)
			users.PUT("/addresses/:id", s.updateAddress)
			users.DELETE("/addresses/:id", s.deleteAddress)
		}

		orders := api.Group("/orders", authRequired)
		{
			orders.POST("", s.createOrder)
			orders.GET("", s.listOrders)
			orders.GET("/:id", s.getOrder)
		}
	}

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Storefront starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Handler exposes the underlying router, for http.Server wiring and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
