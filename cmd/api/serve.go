package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"potensidesa/docs"
	"potensidesa/internal/auth"
	"potensidesa/internal/cache"
	"potensidesa/internal/config"
	"potensidesa/internal/database"
	"potensidesa/internal/database/migration"
	handlers "potensidesa/internal/http/handler"
	"potensidesa/internal/http/middleware"
	"potensidesa/internal/marketing"
	"potensidesa/internal/otel"
	"potensidesa/internal/repository/mongodb"
	"potensidesa/internal/repository/postgres"
	"potensidesa/internal/service"
	"potensidesa/internal/storage"
	"potensidesa/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portal, dashboard and upload API",
		RunE:  runServe,
	}
}

// backends holds the connected infrastructure clients.
type backends struct {
	db    *sql.DB
	mongo *mongo.Client
	mdb   *mongo.Database
	redis *redis.Client
	blobs storage.Storage
}

func (b *backends) Close() {
	if b.mongo != nil {
		_ = b.mongo.Disconnect(context.Background())
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.db != nil {
		_ = b.db.Close()
	}
}

func (b *backends) healthChecks() map[string]handlers.HealthCheckFunc {
	return map[string]handlers.HealthCheckFunc{
		"postgres": b.db.PingContext,
		"mongo":    func(ctx context.Context) error { return b.mongo.Ping(ctx, nil) },
		"redis":    func(ctx context.Context) error { return b.redis.Ping(ctx).Err() },
		"storage":  b.blobs.Ping,
	}
}

func connect(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*backends, error) {
	b := &backends{}
	var err error

	if b.db, err = database.NewPostgres(ctx, cfg.Database, log); err != nil {
		return nil, err
	}
	if err = migration.EnsureMigrated(ctx, b.db, log, cfg.Database.Host); err != nil {
		b.Close()
		return nil, err
	}
	if b.mongo, b.mdb, err = database.NewMongo(ctx, cfg.Mongo); err != nil {
		b.Close()
		return nil, err
	}
	if err = database.EnsureMongoIndexes(ctx, b.mdb); err != nil {
		b.Close()
		return nil, err
	}
	if b.redis, err = cache.NewRedis(cfg.Redis); err != nil {
		b.Close()
		return nil, err
	}
	if b.blobs, err = storage.NewMinIO(cfg.MinIO); err != nil {
		b.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	return b, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	b, err := connect(ctx, cfg, log)
	if err != nil {
		log.Error("startup_failed", zap.Error(err))
		return err
	}
	defer b.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	uploads := service.NewUploadService(b.blobs, cfg.Upload.MaxBytes, time.Now, log)
	deps := handlers.Deps{
		Checks:      b.healthChecks(),
		Upload:      uploads,
		Investments: service.NewInvestmentService(mongodb.NewInvestmentMongo(b.mdb.Collection(mongodb.InvestmentCollection)), uploads, log),
		Dashboard: service.NewDashboardService(
			mongodb.NewLocationMongo(b.mdb.Collection(mongodb.LocationCollection)),
			mongodb.NewDesaMongo(b.mdb.Collection(mongodb.DesaCollection)),
			uploads, log),
		Auth: service.NewAuthService(postgres.NewUserPostgres(b.db), tokens,
			auth.NewRedisSessionStore(b.redis), cfg.Auth.SessionTTL(), log),
		AuthConfig:  cfg.Auth,
		UploadLimit: middleware.NewRateLimiter(float64(cfg.Upload.RateLimitRPS), cfg.Upload.RateLimitBurst),
		Landing:     marketing.Landing(),
		Log:         log,
	}
	if deps.Metrics, err = middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	app := newApp(cfg, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http_listen", zap.String("addr", ":"+cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("http_shutdown")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func serverConfig(cfg *config.AppConfig, d handlers.Deps) fiber.Config {
	return fiber.Config{
		AppName:                 "potensidesa",
		Views:                   web.NewEngine(),
		BodyLimit:               cfg.Upload.BodyLimitBytes,
		ErrorHandler:            handlers.ErrorHandler(d.Log),
		ProxyHeader:             cfg.HTTP.ProxyHeader,
		EnableTrustedProxyCheck: len(cfg.HTTP.TrustedProxies) > 0,
		TrustedProxies:          cfg.HTTP.TrustedProxies,
	}
}

// newApp assembles the Fiber app: global middleware, operational endpoints and portal routes.
func newApp(cfg *config.AppConfig, d handlers.Deps) *fiber.App {
	app := fiber.New(serverConfig(cfg, d))

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(d.Log))
	if d.Metrics != nil {
		app.Use(d.Metrics.Handler())
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   web.Static(),
		MaxAge: 3600,
	}))

	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, d)
	return app
}
