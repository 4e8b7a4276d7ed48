package app

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/seeder"
	"talent-match/internal/domain/matching"
	"talent-match/internal/embedding"
	"talent-match/internal/explain"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     *dbpostgres.Pool
	Cache  *cache.Redis

	Embedder embedding.Provider
	Hub      *ws.Hub
	Notifier *ws.Notifier

	Skills        repository.SkillRepository
	Relationships repository.SkillRelationshipRepository
	Profiles      repository.ProfileRepository
	Vacancies     repository.VacancyRepository
	Results       repository.MatchResultRepository

	SkillGraph *usecase.SkillGraph
	Matching   *usecase.Matching
	Ranking    *usecase.Ranking

	stopHub context.CancelFunc
}

// NewContainer connects the store, applies migrations when configured and wires every usecase.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger, DB: db}

	if cfg.Database.RunMigrations {
		if err := migration.Embedded(logger.Named("migration")).Run(ctx, db); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	c.Embedder, err = embedding.New(ctx, cfg.Embedding, cfg.Gemini.APIKey, c.Cache, logger.Named("embedding"))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	explainer, err := newExplainer(ctx, cfg, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Hub = ws.NewHub(logger)
	hubCtx, stop := context.WithCancel(context.Background())
	c.stopHub = stop
	go c.Hub.Run(hubCtx)
	c.Notifier = ws.NewNotifier(c.Hub)

	c.Skills = repository.NewPostgresSkillRepository(db)
	c.Relationships = repository.NewPostgresSkillRelationshipRepository(db)
	c.Profiles = repository.NewPostgresProfileRepository(db)
	c.Vacancies = repository.NewPostgresVacancyRepository(db)
	c.Results = repository.NewPostgresMatchResultRepository(db)

	engine := matching.NewEngine()
	c.SkillGraph = usecase.NewSkillGraph(c.Skills, c.Relationships, c.Embedder, c.Cache, logger)
	c.Matching = usecase.NewMatchingUsecase(usecase.MatchingDeps{
		Profiles:  c.Profiles,
		Vacancies: c.Vacancies,
		Results:   c.Results,
		Skills:    c.Skills,
		Engine:    engine,
		Explainer: explainer,
		Notifier:  c.Notifier,
		Logger:    logger,
	})
	c.Ranking = usecase.NewRankingUsecase(c.Profiles, c.Vacancies, c.Results, engine, c.Notifier, usecase.RankingOptions{
		Workers:      cfg.Matching.Workers,
		RateLimit:    cfg.Matching.RateLimit,
		DefaultLimit: cfg.Matching.DefaultLimit,
		MaxLimit:     cfg.Matching.MaxLimit,
	}, logger)

	if cfg.Database.RunSeeders {
		if err := c.Seed(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	return c, nil
}

func newExplainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*explain.Explainer, error) {
	opts := explain.Options{Timeout: cfg.Explain.Timeout, MaxRetries: cfg.Explain.MaxRetries}
	if !cfg.Explain.Enabled {
		return explain.New(nil, opts, logger), nil
	}
	gen, err := explain.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Explain.Model)
	if err != nil {
		return nil, fmt.Errorf("explanation generator: %w", err)
	}
	logger.Info("explanations enabled", zap.String("model", gen.Model()))
	return explain.New(gen, opts, logger), nil
}

// Seed loads the reference taxonomy and the sample profiles and vacancies.
func (c *Container) Seed(ctx context.Context) error {
	return seeder.Runner{
		Seeders: seeder.Defaults(seeder.Deps{
			DB:        c.DB,
			Graph:     c.SkillGraph,
			Embedder:  c.Embedder,
			Skills:    c.Skills,
			Profiles:  c.Profiles,
			Vacancies: c.Vacancies,
			Workers:   c.Config.Matching.Workers,
			Logger:    c.Logger.Named("seeder"),
		}),
		Logger: c.Logger.Named("seeder"),
	}.Run(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
