package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"librobuddy-backend/internal/config"
	infraCache "librobuddy-backend/internal/infrastructure/cache"
	"librobuddy-backend/internal/infrastructure/database"
	"librobuddy-backend/pkg/cache"
	"librobuddy-backend/pkg/jwt"

	"librobuddy-backend/internal/domains/user"
	userHandler "librobuddy-backend/internal/domains/user/handler"
	userRepo "librobuddy-backend/internal/domains/user/repository"
	userService "librobuddy-backend/internal/domains/user/service"

	bookHandler "librobuddy-backend/internal/domains/book/handler"
	bookRepo "librobuddy-backend/internal/domains/book/repository"
	bookService "librobuddy-backend/internal/domains/book/service"

	orderHandler "librobuddy-backend/internal/domains/order/handler"
	orderRepo "librobuddy-backend/internal/domains/order/repository"
	orderService "librobuddy-backend/internal/domains/order/service"

	supplierHandler "librobuddy-backend/internal/domains/supplier/handler"
	supplierRepo "librobuddy-backend/internal/domains/supplier/repository"
	supplierService "librobuddy-backend/internal/domains/supplier/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency, built once at startup
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *infraCache.RedisCache // nil when Redis was unreachable at startup
	Cache      cache.Cache            // nil when Redis was unreachable at startup
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     user.Repository
	BookRepo     bookRepo.RepositoryInterface
	OrderRepo    orderRepo.OrderRepository
	SupplierRepo supplierRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService     user.Service
	BookService     bookService.ServiceInterface
	OrderService    orderService.OrderService
	SupplierService supplierService.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler     *userHandler.UserHandler
	BookHandler     *bookHandler.Handler
	OrderHandler    *orderHandler.OrderHandler
	SupplierHandler *supplierHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	// Redis only backs login throttling; startup continues without it
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		_ = redisCache.Close()
	} else {
		c.Redis = redisCache
		c.Cache = redisCache
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// ========================================
	// STEP 4-6: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresOrderRepository(pool)
	c.SupplierRepo = supplierRepo.NewRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache, c.Config.Auth)
	c.BookService = bookService.NewService(c.BookRepo)

	// Order and supplier run their stock changes through the book repository inside their own transactions
	c.OrderService = orderService.NewOrderService(c.DB, c.OrderRepo, c.BookRepo)
	c.SupplierService = supplierService.NewService(c.DB, c.SupplierRepo, c.BookRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.SupplierHandler = supplierHandler.NewHandler(c.SupplierService)
}

// Cleanup releases connections; called on graceful shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
