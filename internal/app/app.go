package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	validator "github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"gorm.io/gorm"

	"pocketcart/internal/config"
	"pocketcart/internal/db"
	listsdomain "pocketcart/internal/domain/lists"
	tripsdomain "pocketcart/internal/domain/trips"
	userdomain "pocketcart/internal/domain/user"
	"pocketcart/internal/metrics"
	"pocketcart/internal/repository/inmemory"
	listsrepo "pocketcart/internal/repository/postgres/lists"
	tripsrepo "pocketcart/internal/repository/postgres/trips"
	userrepo "pocketcart/internal/repository/postgres/user"
	rediscache "pocketcart/internal/repository/redis"
	"pocketcart/internal/transport/httpserver"
	"pocketcart/internal/transport/httpserver/handler"
	commonhandler "pocketcart/internal/transport/httpserver/handler/common"
	listshandler "pocketcart/internal/transport/httpserver/handler/lists"
	tripshandler "pocketcart/internal/transport/httpserver/handler/trips"
	"pocketcart/pkg/logger"
)

const sessionPurgeInterval = time.Hour

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
	users      *userdomain.Service
	log        logger.Logger
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log = logger.OrNop(log)

	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(ctx, cfg.DB.GetDSN(), log); err != nil {
			return nil, err
		}
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	application := &App{cfg: cfg, db: dbConn, log: log}

	var historyCache tripsdomain.HistoryCache = inmemory.NewHistoryCache()
	limitStore := limitermemory.NewStore()
	if cfg.Redis.URL != "" {
		log.Info("app: connecting to redis")
		client, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			_ = application.Close()
			return nil, err
		}
		application.redis = client
		historyCache = rediscache.NewHistoryCache(client, log)

		store, err := limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "pocketcart:limiter"})
		if err != nil {
			_ = application.Close()
			return nil, fmt.Errorf("limiter store: %w", err)
		}
		limitStore = store
	}

	users := userdomain.NewServiceWithConfig(userrepo.NewPostgres(dbConn), userdomain.Config{
		SessionTTL: cfg.Auth.SessionTTL,
	})
	lists := listsdomain.NewService(listsrepo.NewPostgres(dbConn))
	trips := tripsdomain.NewServiceWithConfig(tripsrepo.NewPostgres(dbConn), tripsdomain.Config{
		Location: cfg.History.Location,
		Cache:    historyCache,
		CacheTTL: cfg.History.CacheTTL,
	})
	application.users = users

	m := metrics.New()
	handlers := handler.New(
		commonhandler.New(users, cfg.Auth, validator.New(), log),
		listshandler.New(lists, m, log),
		tripshandler.New(trips, m, log),
	)

	log.Info("app: initializing router")
	router, err := httpserver.NewRouter(cfg, httpserver.RouterDeps{
		Handlers:   handlers,
		Sessions:   users,
		Metrics:    m,
		LimitStore: limitStore,
	}, log)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	log.Info("app: initializing http server")
	application.httpServer = httpserver.New(cfg, router)

	return application, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// RunSessionPurge removes expired sessions periodically until ctx is done.
func (a *App) RunSessionPurge(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.users.PurgeExpiredSessions(ctx)
			if err != nil {
				a.log.Error("auth.sessions: purge failed", "err", err)
				continue
			}
			if removed > 0 {
				a.log.Info("auth.sessions: purged expired", "count", removed)
			}
		}
	}
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
