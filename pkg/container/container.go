package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"memorial-backend/internal/config"
	infraCache "memorial-backend/internal/infrastructure/cache"
	"memorial-backend/internal/infrastructure/database"
	"memorial-backend/internal/infrastructure/queue"
	"memorial-backend/internal/infrastructure/storage"
	"memorial-backend/pkg/jwt"

	profileHandler "memorial-backend/internal/domains/profile/handler"
	profileRepo "memorial-backend/internal/domains/profile/repository"
	profileService "memorial-backend/internal/domains/profile/service"
	providerHandler "memorial-backend/internal/domains/provider/handler"
	providerService "memorial-backend/internal/domains/provider/service"
	userHandler "memorial-backend/internal/domains/user/handler"
	userRepo "memorial-backend/internal/domains/user/repository"
	userService "memorial-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Initialization order
// is config, infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *pgxpool.Pool
	Cache      *infraCache.RedisCache
	Enqueuer   *queue.Enqueuer
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	ProfileRepo profileRepo.ProfileRepository
	UserRepo    userRepo.UserRepository

	ProfileService  profileService.ProfileService
	UserService     userService.UserService
	ProviderService providerService.ProviderService

	ProfileHandler  *profileHandler.ProfileHandler
	UserHandler     *userHandler.UserHandler
	ProviderHandler *providerHandler.ProviderHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = pool

	c.Cache = infraCache.NewRedisCache(cfg.Redis)
	if err := c.Cache.Connect(ctx); err != nil {
		// Redis failure is not fatal: the service degrades to
		// uncached reads.
		log.Warn().Err(err).Msg("Redis connection failed, running without cache")
	}

	c.Enqueuer = queue.NewEnqueuer(cfg.Redis)

	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("MinIO unavailable, photo uploads disabled")
		c.Storage = nil
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	c.ProfileRepo = profileRepo.NewPostgresProfileRepository(c.DB)
	c.UserRepo = userRepo.NewPostgresUserRepository(c.DB)
}

func (c *Container) initServices() {
	c.ProfileService = profileService.NewProfileService(c.ProfileRepo, c.Cache, c.Enqueuer)
	c.UserService = userService.NewUserService(c.UserRepo, c.ProfileRepo, c.JWTManager)
	c.ProviderService = providerService.NewProviderService(nil)
}

func (c *Container) initHandlers() {
	var photos profileHandler.PhotoStorage
	if c.Storage != nil {
		photos = c.Storage
	}
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService, photos)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProviderHandler = providerHandler.NewProviderHandler(c.ProviderService)
}

// Cleanup releases connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.Enqueuer != nil {
		if err := c.Enqueuer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close queue client")
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleanup completed")
}
