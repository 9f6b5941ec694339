package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/api/handlers"
	"storefront/internal/api/middleware"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, publisher *events.Publisher, stats *cache.StatsCache) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db.DB, cfg, logger)
	productHandler := handlers.NewProductHandler(db.DB, logger)
	categoryHandler := handlers.NewCategoryHandler(db.DB, logger)
	orderHandler := handlers.NewOrderHandler(db.DB, publisher, stats, logger)
	catalogHandler := handlers.NewCatalogHandler(db.DB, logger, cfg.MediaDir)
	blogHandler := handlers.NewBlogHandler(db.DB, logger)
	bannerHandler := handlers.NewBannerHandler(db.DB, logger)
	contactHandler := handlers.NewContactHandler(db.DB, logger)

	requireAuth := middleware.RequireAuth(db.DB, cfg.JWTSecret)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Accounts
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		// Catalog
		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:slug", productHandler.Get)
			products.GET("/:slug/similar", productHandler.Similar)
			products.POST("", productHandler.Create)
			products.PUT("/:slug", productHandler.Update)
			products.DELETE("/:slug", productHandler.Delete)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:slug", categoryHandler.GetCategory)
			categories.PUT("/:slug", categoryHandler.UpdateCategory)
			categories.DELETE("/:slug", categoryHandler.DeleteCategory)
		}

		subcategories := v1.Group("/subcategories")
		{
			subcategories.GET("", categoryHandler.ListSubcategories)
			subcategories.POST("", categoryHandler.CreateSubcategory)
			subcategories.DELETE("/:slug", categoryHandler.DeleteSubcategory)
		}

		subsubcategories := v1.Group("/subsubcategories")
		{
			subsubcategories.GET("", categoryHandler.ListSubSubcategories)
			subsubcategories.POST("", categoryHandler.CreateSubSubcategory)
			subsubcategories.DELETE("/:slug", categoryHandler.DeleteSubSubcategory)
		}

		sizes := v1.Group("/sizes")
		{
			sizes.GET("", categoryHandler.ListSizes)
			sizes.POST("", categoryHandler.CreateSize)
		}

		// Orders
		orders := v1.Group("/orders", requireAuth)
		{
			orders.GET("", orderHandler.List)
			orders.POST("", orderHandler.Create)
			orders.GET("/:order_number", orderHandler.Get)
			orders.PATCH("/:order_number", orderHandler.Update)
			orders.DELETE("/:order_number", orderHandler.Delete)
		}
		v1.GET("/my-orders", requireAuth, orderHandler.My)
		v1.GET("/my-order-status/:order_number", requireAuth, orderHandler.MyStatus)
		v1.GET("/dashboard-stats", requireAuth, orderHandler.Stats)
		v1.GET("/revenue", requireAuth, orderHandler.Revenue)

		// Bulk catalog import/export
		catalog := v1.Group("/catalog")
		{
			catalog.POST("/import", catalogHandler.ImportUpload)
			catalog.POST("/import-rows", catalogHandler.ImportRows)
			catalog.GET("/export", catalogHandler.Export)
		}

		// Blog / CMS
		blog := v1.Group("/blog")
		{
			blog.GET("/categories", blogHandler.ListCategories)
			blog.POST("/categories", blogHandler.CreateCategory)
			blog.GET("/tags", blogHandler.ListTags)
			blog.POST("/tags", blogHandler.CreateTag)
			blog.GET("/blogs", blogHandler.List)
			blog.POST("/blogs", blogHandler.Create)
			blog.GET("/blogs/:slug", blogHandler.Get)
			blog.PUT("/blogs/:slug", blogHandler.Update)
			blog.DELETE("/blogs/:slug", blogHandler.Delete)
			blog.POST("/comments", requireAuth, blogHandler.CreateComment)
			blog.DELETE("/comments/:id", requireAuth, blogHandler.DeleteComment)
			blog.GET("/testimonials", blogHandler.ListTestimonials)
			blog.POST("/testimonials", blogHandler.CreateTestimonial)
		}

		// Banners
		banners := v1.Group("/banners")
		{
			banners.GET("", bannerHandler.List)
			banners.POST("", bannerHandler.Create)
			banners.GET("/:id", bannerHandler.Get)
			banners.PUT("/:id", bannerHandler.Update)
			banners.DELETE("/:id", bannerHandler.Delete)
		}

		bannerImages := v1.Group("/banner-images")
		{
			bannerImages.GET("", bannerHandler.ListImages)
			bannerImages.POST("", bannerHandler.CreateImage)
			bannerImages.DELETE("/:id", bannerHandler.DeleteImage)
		}

		// Contact / newsletter
		contacts := v1.Group("/contacts")
		{
			contacts.GET("", requireAuth, contactHandler.List)
			contacts.POST("", contactHandler.Create)
		}
		v1.POST("/newsletter", contactHandler.Subscribe)
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	s.server = &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// GetRouter exposes the Gin router, mainly for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
