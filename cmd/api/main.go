package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"yatube/internal/config"
	"yatube/internal/domain/event"
	hhttp "yatube/internal/handler/http"
	hauth "yatube/internal/handler/http/auth"
	hfeed "yatube/internal/handler/http/feed"
	hfollow "yatube/internal/handler/http/follow"
	"yatube/internal/handler/http/middleware"
	"yatube/internal/handler/http/pagecache"
	hpost "yatube/internal/handler/http/post"
	"yatube/internal/handler/http/requestid"
	"yatube/internal/handler/http/respond"
	"yatube/internal/infra/adapter/persistence"
	"yatube/internal/infra/cache"
	"yatube/internal/infra/db"
	"yatube/internal/infra/eventbus"
	"yatube/internal/observability/logging"
	"yatube/internal/observability/tracing"
	"yatube/internal/resilience/circuitbreaker"
	"yatube/internal/resilience/retry"
	authservice "yatube/internal/service/auth"
	feedUC "yatube/internal/usecase/feed"
	followUC "yatube/internal/usecase/follow"
	postUC "yatube/internal/usecase/post"
	"yatube/pkg/security/csp"
)

// loginIdleTTL is how long an idle client keeps its login rate bucket.
const loginIdleTTL = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg)
	tracing.InitPropagator()

	database := initDatabase(logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	deps, err := setupServer(logger, cfg, database)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.Close(logger)

	runServer(logger, cfg, deps)
}

// initLogger builds the JSON logger and installs it as the default.
func initLogger(cfg *config.AppConfig) *slog.Logger {
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), false)
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and creates the schema.
func initDatabase(logger *slog.Logger, cfg *config.AppConfig) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var database *sql.DB
	err := retry.WithBackoff(ctx, startupRetry(ctx), func() (err error) {
		database, err = db.Open(ctx, cfg.DBDialect, cfg.DatabaseURL)
		return err
	})
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(ctx, database, cfg.DBDialect); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
	return database
}

// startupRetry waits for dependencies started alongside the server.
// Every failure is retried while ctx is live, including ping timeouts.
func startupRetry(ctx context.Context) retry.Config {
	cfg := retry.StartupConfig()
	cfg.RetryIf = func(error) bool { return ctx.Err() == nil }
	return cfg
}

// ServerComponents holds the handler and the resources that outlive setup.
type ServerComponents struct {
	Handler    http.Handler
	MemoryPage *cache.MemoryStore // nil with the redis backend
	closers    []func() error
}

// Close releases the page cache and event bus connections.
func (c *ServerComponents) Close(logger *slog.Logger) {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close resource", slog.Any("error", err))
		}
	}
}

// setupServer wires repositories, services, routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, database *sql.DB) (*ServerComponents, error) {
	comps := &ServerComponents{}
	breaker := circuitbreaker.WrapDB(database)

	repos, err := persistence.New(cfg.DBDialect, breaker)
	if err != nil {
		return nil, err
	}

	var (
		pageStore cache.Store
		pinger    cache.Pinger
	)
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		comps.closers = append(comps.closers, client.Close)
		store := cache.NewRedisStore(client)
		pageStore, pinger = store, store
		logger.Info("page cache: redis", slog.String("addr", cfg.RedisAddr))
	default:
		comps.MemoryPage = cache.NewMemoryStore()
		pageStore = comps.MemoryPage
		logger.Info("page cache: memory")
	}

	var publisher event.Publisher = event.Discard{}
	if cfg.NATSURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		var nc *nats.Conn
		err := retry.WithBackoff(ctx, startupRetry(ctx), func() (err error) {
			nc, err = eventbus.Connect(cfg.NATSURL)
			return err
		})
		if err != nil {
			return nil, err
		}
		comps.closers = append(comps.closers, func() error { return nc.Drain() })
		publisher = eventbus.NewNATSPublisher(nc)
		logger.Info("event bus: nats", slog.String("url", nc.ConnectedUrl()))
	} else {
		logger.Warn("NATS_URL not set, domain events are discarded")
	}

	feedSvc := &feedUC.Service{
		Posts:    repos.Posts,
		Groups:   repos.Groups,
		Users:    repos.Users,
		Follows:  repos.Follows,
		Comments: repos.Comments,
		PageSize: cfg.Pagination.PageSize,
	}
	postSvc := &postUC.Service{
		Posts:    repos.Posts,
		Groups:   repos.Groups,
		Comments: repos.Comments,
		Events:   publisher,
		Logger:   logger,
	}
	graph := &followUC.Graph{
		Users:   repos.Users,
		Follows: repos.Follows,
		Events:  publisher,
		Logger:  logger,
	}
	sessions := hauth.NewSessions([]byte(cfg.JWTSecret), cfg.SessionTTL)

	mux := setupRoutes(logger, cfg, routeDeps{
		database:  database,
		breaker:   breaker,
		pageStore: pageStore,
		pinger:    pinger,
		feed:      feedSvc,
		posts:     postSvc,
		graph:     graph,
		repos:     repos,
		auth:      authservice.NewService(repos.Users),
		sessions:  sessions,
	})

	handler, err := applyMiddleware(logger, cfg, mux, hauth.Session(sessions, repos.Users, logger))
	if err != nil {
		return nil, err
	}
	comps.Handler = handler
	return comps, nil
}

type routeDeps struct {
	database  *sql.DB
	breaker   *circuitbreaker.DB
	pageStore cache.Store
	pinger    cache.Pinger
	feed      *feedUC.Service
	posts     *postUC.Service
	graph     *followUC.Graph
	repos     *persistence.Repositories
	auth      *authservice.Service
	sessions  *hauth.Sessions
}

// setupRoutes registers the page, auth and operational routes.
func setupRoutes(logger *slog.Logger, cfg *config.AppConfig, d routeDeps) *http.ServeMux {
	mux := http.NewServeMux()

	cacheIndex := pagecache.Middleware(d.pageStore, pagecache.IndexPrefix, cfg.IndexCacheTTL, logger)
	hfeed.Register(mux, d.feed, cfg.Pagination, cacheIndex, logger)
	hpost.Register(mux, hpost.Handler{Svc: d.posts, Groups: d.repos.Groups, Logger: logger})
	hfollow.Register(mux, hfollow.Handler{Graph: d.graph, Logger: logger})

	loginLimiter := hhttp.NewRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst, loginIdleTTL).
		TrustProxies(cfg.TrustedProxies)
	hauth.Register(mux, hauth.LoginHandler{
		Auth:         d.auth,
		Sessions:     d.sessions,
		SecureCookie: cfg.SecureCookie,
		Logger:       logger,
	}, loginLimiter.Limit)

	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:        d.database,
		DBBreaker: d.breaker.Breaker(),
		Cache:     d.pinger,
		Version:   cfg.Version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: d.database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.NotFound(w)
	}))
	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order, outermost first: CORS, request ID, tracing, recovery, logging,
// body limit, timeout, security headers, metrics, session.
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler, session func(http.Handler) http.Handler) (http.Handler, error) {
	corsMW, err := middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins}, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("CORS configured",
		slog.Int("allowed_origins_count", len(cfg.CORSAllowedOrigins)),
		slog.Any("allowed_origins", cfg.CORSAllowedOrigins))

	return hhttp.Chain(handler,
		corsMW,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
		hhttp.Timeout(hhttp.DefaultRequestTimeout),
		middleware.SecurityHeaders(csp.StrictPolicy().ReportOnly(cfg.CSPReportOnly)),
		hhttp.MetricsMiddleware,
		session,
	), nil
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.AppConfig, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.MemoryPage != nil {
		go hhttp.StartSweeper(ctx, components.MemoryPage, hhttp.DefaultSweepInterval, "page_cache", logger)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
