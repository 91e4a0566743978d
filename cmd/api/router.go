package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"librobuddy-backend/internal/shared"
	"librobuddy-backend/internal/shared/middleware"
	"librobuddy-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	auth := middleware.AuthMiddleware(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c, auth)
		setupAdminRoutes(v1, c, auth)
		setupBookRoutes(v1, c, auth)
		setupOrderRoutes(v1, c, auth)
		setupSupplierRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.GET("/me", auth, c.UserHandler.GetProfile)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	admin := v1.Group("/admin", auth, middleware.RequireRoles(shared.RoleAdmin))
	{
		admin.PUT("/users/:id/role", c.UserHandler.UpdateUserRole)
	}
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
	}

	staffBooks := v1.Group("/books", auth, middleware.StaffOnly())
	{
		staffBooks.POST("", c.BookHandler.CreateBook)
		staffBooks.PUT("/:id", c.BookHandler.UpdateBook)
		staffBooks.DELETE("/:id", c.BookHandler.DeleteBook)
	}

	v1.GET("/inventory/low-stock", auth, middleware.StaffOnly(), c.BookHandler.ListLowStock)

	v1.GET("/categories", c.BookHandler.ListCategories)
	v1.POST("/categories", auth, middleware.StaffOnly(), c.BookHandler.CreateCategory)
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	// any authenticated user; ownership and role rules live in the order service
	c.OrderHandler.RegisterRoutes(v1.Group("", auth))
}

// ========================================
// SUPPLIER ROUTES
// ========================================
func setupSupplierRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	c.SupplierHandler.RegisterRoutes(v1.Group("", auth, middleware.StaffOnly()))
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "unavailable"
			status = http.StatusServiceUnavailable
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error: " + err.Error()
		}
		if redisStatus != "ok" && status == http.StatusOK {
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"pool":     appCtx.DB.Stats(),
		}

		c.JSON(status, health)
	}
}
