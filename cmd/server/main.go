package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"countryref/internal/country/events"
	countryhandler "countryref/internal/country/handler"
	countrymetrics "countryref/internal/country/metrics"
	"countryref/internal/country/seed"
	"countryref/internal/country/service"
	"countryref/internal/platform/config"
	"countryref/internal/platform/httpserver"
	"countryref/internal/platform/logger"
	platformmetrics "countryref/internal/platform/metrics"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Warn("closing store failed", "error", err)
		}
	}()

	publisher, closePublisher, err := openPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	countryMetrics := countrymetrics.New()
	svc := service.New(store.versions,
		service.WithLogger(log),
		service.WithMetrics(countryMetrics),
		service.WithPublisher(publisher),
	)

	status := seed.NewStatus(cfg.Seed.Enabled)
	router := newRouter(routerDeps{
		handler:     countryhandler.New(svc, log),
		httpMetrics: platformmetrics.New(prometheus.DefaultRegisterer),
		gatherer:    prometheus.DefaultGatherer,
		apiKey:      cfg.APIKey,
		status:      status,
		storeCheck:  store.health,
		logger:      log,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Seed.Enabled {
		loader := seed.NewLoader(store.versions,
			seed.WithLogger(log),
			seed.WithMetrics(countryMetrics),
			seed.WithPublisher(publisher),
		)
		fsys, name := seedSource(cfg.Seed)
		g.Go(func() error {
			loader.Run(gctx, fsys, name, status)
			return nil
		})
	} else {
		log.Debug("data seeding is disabled; set SEED_ENABLED=true to enable")
	}

	g.Go(func() error {
		log.Info("starting countryref", "addr", cfg.Addr, "store", cfg.Store.Backend)
		return httpserver.ListenAndServe(srv)
	})

	g.Go(func() error {
		err := httpserver.ShutdownOnDone(gctx, srv, cfg.ShutdownTimeout)
		log.Info("server stopped")
		return err
	})

	return g.Wait()
}

// seedSource resolves SEED_FILE, falling back to the bundled dataset.
func seedSource(cfg config.SeedConfig) (fs.FS, string) {
	if cfg.File == "" {
		return seed.Dataset, seed.DatasetFile
	}
	return os.DirFS(filepath.Dir(cfg.File)), filepath.Base(cfg.File)
}

func openPublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (service.Publisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		return events.NopPublisher{}, func() {}, nil
	}
	pub, err := events.NewKafkaPublisher(cfg.Brokers, cfg.Topic,
		events.WithKafkaLogger(log),
		events.WithPublishTimeout(cfg.PublishTimeout),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := pub.EnsureTopic(ctx, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		pub.Close(ctx)
		return nil, nil, err
	}
	return pub, func() { pub.Close(context.Background()) }, nil
}
