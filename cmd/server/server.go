package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/creatureworks/creature-api/internal/clients/catalog"
	"github.com/creatureworks/creature-api/internal/config"
	apiv1 "github.com/creatureworks/creature-api/internal/handlers/api/v1"
	metrics "github.com/creatureworks/creature-api/internal/observability/metrics/prometheus"
	gameorch "github.com/creatureworks/creature-api/internal/orchestrators/game"
	"github.com/creatureworks/creature-api/internal/pkg/clock"
	"github.com/creatureworks/creature-api/internal/pkg/idgen"
	"github.com/creatureworks/creature-api/internal/pkg/rng"
	redisclient "github.com/creatureworks/creature-api/internal/redis"
	accountrepo "github.com/creatureworks/creature-api/internal/repositories/account"
	collectionrepo "github.com/creatureworks/creature-api/internal/repositories/collection"
	marketrepo "github.com/creatureworks/creature-api/internal/repositories/market"
	traderepo "github.com/creatureworks/creature-api/internal/repositories/trade"
)

var (
	httpPort   int
	configPath string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the creature-api HTTP server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 0, "HTTP server port (overrides config)")
	serverCmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "path to the config file")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg := config.MustLoad(configPath)
	if httpPort != 0 {
		cfg.Server.Port = httpPort
	}

	client, err := redisclient.NewClient(cfg.Redis.Address, &redisclient.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = client.Close() }()

	accountRepo, err := accountrepo.NewRedis(&accountrepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create account repository: %w", err)
	}
	collectionRepo, err := collectionrepo.NewRedis(&collectionrepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create collection repository: %w", err)
	}
	marketRepo, err := marketrepo.NewRedis(&marketrepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create market repository: %w", err)
	}
	tradeRepo, err := traderepo.NewRedis(&traderepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create trade repository: %w", err)
	}

	catalogClient, err := catalog.New(&catalog.Config{
		BaseURL:     cfg.Catalog.BaseURL,
		HTTPTimeout: cfg.Catalog.HTTPTimeout,
		CacheTTL:    cfg.Catalog.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	orchestrator, err := gameorch.New(&gameorch.Config{
		AccountRepo:    accountRepo,
		CollectionRepo: collectionRepo,
		MarketRepo:     marketRepo,
		TradeRepo:      tradeRepo,
		CatalogClient:  catalogClient,
		RNG:            rng.New(),
		InstanceIDGen:  idgen.NewUUID("crt"),
		TradeIDGen:     idgen.NewUUID("trd"),
		Clock:          clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	handler, err := apiv1.New(&apiv1.Config{Service: orchestrator})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go metrics.New(cfg.Server.MetricsPort).Start(ctx)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed, closing", "error", err)
			return srv.Close()
		}

		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}
