package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pitch-league/internal/config"
	"github.com/riskibarqy/pitch-league/internal/domain/league"
	"github.com/riskibarqy/pitch-league/internal/domain/match"
	"github.com/riskibarqy/pitch-league/internal/domain/team"
	"github.com/riskibarqy/pitch-league/internal/infrastructure/account/static"
	cacherepo "github.com/riskibarqy/pitch-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pitch-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pitch-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pitch-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/pitch-league/internal/platform/cache"
	idgen "github.com/riskibarqy/pitch-league/internal/platform/id"
	"github.com/riskibarqy/pitch-league/internal/platform/logging"
	"github.com/riskibarqy/pitch-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	leagues league.Repository
	teams   team.Repository
	matches match.Repository
}

// NewHTTPServer wires storage, services and the router. The returned cleanup
// closes resources opened for the server and is safe to call once.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, cleanup, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		repoCache := cache.NewStore(cfg.CacheTTL)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, repoCache)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, repoCache)
		standingsCache = cache.NewStore(cfg.CacheTTL)
	}

	ids := idgen.NewXIDGenerator()
	standingSvc := usecase.NewStandingService(
		repos.leagues,
		repos.teams,
		repos.matches,
		standingsCache,
		cfg.StandingsWarmupWorkers,
		logger.Named("standings"),
	)
	scheduleSvc := usecase.NewScheduleService(
		repos.leagues,
		repos.teams,
		repos.matches,
		standingSvc,
		ids,
		logger.Named("schedule"),
	)
	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams, scheduleSvc, standingSvc, ids, logger.Named("league"))
	teamSvc := usecase.NewTeamService(repos.teams, ids, logger.Named("team"))

	handler := httpapi.NewHandler(leagueSvc, teamSvc, scheduleSvc, standingSvc, logger)
	router := httpapi.NewRouter(
		handler,
		static.NewVerifier(cfg.StaticTokens),
		logger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func(), error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Info("using in-memory storage with seed data")
		return repositories{
			leagues: memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships()),
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			matches: memory.NewMatchRepository(),
		}, func() {}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	if cfg.DBSeedEnabled {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database failed", "error", err)
		}
	}

	return repositories{
		leagues: postgres.NewLeagueRepository(db),
		teams:   postgres.NewTeamRepository(db),
		matches: postgres.NewMatchRepository(db),
	}, cleanup, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open(
		"postgres",
		dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
