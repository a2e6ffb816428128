package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"

	"github.com/jcmexdev/ecommerce-shop-api/internal/pkg/cache"
	"github.com/jcmexdev/ecommerce-shop-api/internal/pkg/config"
	"github.com/jcmexdev/ecommerce-shop-api/internal/pkg/telemetry"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/services"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/adapters/seedgate"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/adapters/store/memory"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/adapters/store/mongo"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/grpcx"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/infra/httpx"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/seedlog"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/seedlog/sqlite"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to an optional config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := telemetry.InitLogger(cfg.LogLevel); err != nil {
		slog.Error("failed to initialise logger", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("shop-api stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("shop-api stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	otel.SetTextMapPropagator(telemetry.NewPropagator())
	if cfg.TracingEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.TracingEndpoint)
		if err != nil {
			return fmt.Errorf("initialise tracer: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	gate, closeGate := newSeedGate(cfg)
	defer closeGate()

	// A nil interface disables seed run logging.
	var seedLog seedlog.Repository
	if cfg.SeedLogPath != "" {
		repo, err := sqlite.Open(cfg.SeedLogPath)
		if err != nil {
			return fmt.Errorf("open seed log: %w", err)
		}
		defer repo.Close()
		seedLog = repo
		logSeedHistory(ctx, repo, cfg.SeedLogPath)
	}

	catalog := services.NewCatalogService(store, gate, seedLog)
	orders := services.NewOrderService(store)
	probe := services.NewProbe(store)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpx.NewRouter(httpx.NewHandler(catalog, orders, probe)),
	}

	healthServer := health.NewServer()
	grpcServer := grpcx.NewServer(healthServer)
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("shop-api HTTP running", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		slog.Info("shop-api gRPC health running", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		grpcx.NewHealthWatcher(probe, healthServer, cfg.HealthInterval).Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (ports.DocumentStore, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		slog.Warn("using in-memory document store; data is lost on exit")
		return memory.New(), func() {}, nil
	}

	st, err := mongo.Connect(ctx, mongo.Options{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("mongo store configured", "database", cfg.Mongo.Database)

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.Close(ctx); err != nil {
			slog.Error("mongo disconnect error", "error", err)
		}
	}
	return st, closeFn, nil
}

func newSeedGate(cfg *config.Config) (ports.SeedGate, func()) {
	if cfg.RedisAddr == "" {
		return seedgate.NewLocal(), func() {}
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
	slog.Info("seed gate uses redis", "addr", cfg.RedisAddr, "lock_ttl", cfg.SeedLockTTL)
	return seedgate.NewRedis(redisCache, cfg.SeedLockTTL), func() {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
}

func logSeedHistory(ctx context.Context, repo *sqlite.Repository, path string) {
	sum, err := repo.Summarize(ctx)
	if err != nil {
		slog.WarnContext(ctx, "seed log enabled; history unreadable", "path", path, "error", err)
		return
	}
	attrs := []any{"path", path, "created_runs", sum.Created, "skipped_runs", sum.Skipped, "failed_runs", sum.Failed}
	if sum.Latest != nil {
		attrs = append(attrs, "latest_outcome", sum.Latest.Outcome, "latest_at", sum.Latest.CreatedAt)
	}
	slog.InfoContext(ctx, "seed log enabled", attrs...)
}
