package app

import (
	"context"
	"errors"
	"time"

	"career-sync/internal/config"
	"career-sync/internal/database"
	dbpostgres "career-sync/internal/database/postgres"
	"career-sync/internal/embedding"
	"career-sync/internal/embedding/gemini"
	"career-sync/internal/infrastructure/cache"
	"career-sync/internal/pkg/jwt"
	"career-sync/internal/repository"
	"career-sync/internal/usecase"
	"career-sync/internal/ws"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Container owns every long-lived dependency. Both the HTTP server and the
// CLI build one.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    *jwt.HMACService

	Embeddings *embedding.Service

	Careers     *repository.PostgresCareerRepository
	Matches     *repository.PostgresCareerMatchRepository
	Users       *repository.PostgresUserRepository
	Profiles    *repository.PostgresUserProfileRepository
	UserQueries *repository.PostgresUserQueryRepository

	Auth     *usecase.Auth
	Catalog  *usecase.Catalog
	Profile  *usecase.Profile
	Matching *usecase.CareerMatching

	closers []func() error
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.closers = append(c.closers, db.Close)

	c.Cache = cache.NewRedis(cfg.Redis, logger.Named("cache"))
	c.closers = append(c.closers, c.Cache.Close)

	c.Embeddings = embedding.NewService(
		c.embeddingProviders(ctx),
		embedding.WithLogger(logger.Named("embedding")),
		embedding.WithBatchConcurrency(cfg.Matching.Concurrency),
	)

	c.Hub = ws.NewHub(logger.Named("ws"))
	c.JWT = jwt.NewHMACService(jwt.Options{
		AccessSecret:     cfg.JWT.AccessSecret,
		RefreshSecret:    cfg.JWT.RefreshSecret,
		AccessExpiresIn:  cfg.JWT.AccessExpiresIn,
		RefreshExpiresIn: cfg.JWT.RefreshExpiresIn,
		Issuer:           cfg.App.AppName,
	})

	c.Careers = repository.NewPostgresCareerRepository(db)
	c.Matches = repository.NewPostgresCareerMatchRepository(db)
	c.Users = repository.NewPostgresUserRepository(db)
	c.Profiles = repository.NewPostgresUserProfileRepository(db)
	c.UserQueries = repository.NewPostgresUserQueryRepository(db)

	c.Auth = usecase.NewAuthUsecase(c.Users, c.JWT)
	c.Profile = usecase.NewProfileUsecase(c.Users, c.Profiles)
	c.Catalog = usecase.NewCatalogUsecase(c.Careers, c.Matches, c.Cache, logger.Named("catalog"))
	c.Matching = usecase.NewCareerMatchingUsecase(
		c.Careers,
		c.Matches,
		c.Embeddings,
		c.Cache,
		c.Hub,
		logger.Named("matching"),
		usecase.CareerMatchingOptions{
			Concurrency:  cfg.Matching.Concurrency,
			CatalogLimit: cfg.Matching.CatalogLimit,
			EmbeddingTTL: cfg.Matching.EmbeddingTTL,
			EnhancedTTL:  cfg.Matching.EnhancedTTL,
		},
	)

	return c, nil
}

// embeddingProviders builds the fallback chain: the genai SDK first, then the
// older generative-ai-go SDK. A provider that fails to start is skipped.
func (c *Container) embeddingProviders(ctx context.Context) []embedding.Provider {
	cfg := c.Config.Embedding
	if cfg.APIKey == "" {
		c.Logger.Warn("no embedding API key configured; match generation will fail")
		return nil
	}

	var providers []embedding.Provider
	primary, err := gemini.NewProvider(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		c.Logger.Warn("primary embedding provider unavailable", zap.Error(err))
	} else {
		providers = append(providers, embedding.RateLimited(primary, cfg.RPS, cfg.Burst))
	}

	if cfg.FallbackModel != "" {
		legacy, err := gemini.NewLegacyProvider(ctx, cfg.APIKey, cfg.FallbackModel)
		if err != nil {
			c.Logger.Warn("fallback embedding provider unavailable", zap.Error(err))
		} else {
			providers = append(providers, embedding.RateLimited(legacy, cfg.RPS, cfg.Burst))
			c.closers = append(c.closers, legacy.Close)
		}
	}
	return providers
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Matching != nil {
		c.Matching.WaitWriteBacks()
	}

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
