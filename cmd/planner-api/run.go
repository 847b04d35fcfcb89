package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/kubev2v/fracture-planner/internal/api_server"
	"github.com/kubev2v/fracture-planner/internal/config"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/estimation/solvers"
	"github.com/kubev2v/fracture-planner/internal/events"
	"github.com/kubev2v/fracture-planner/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		defer setupLogging(cfg)()

		zap.S().Info("Starting API service...")
		defer zap.S().Info("API service stopped")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		var runStore store.Store
		if cfg.Estimation.PersistRuns {
			zap.S().Infow("Initializing data store", "type", cfg.Database.Type, "name", cfg.Database.Name)
			db, err := store.InitDB(cfg)
			if err != nil {
				zap.S().Fatalw("initializing data store", "error", err)
			}

			runStore = store.NewStore(db)
			defer runStore.Close()

			if err := runStore.InitialMigration(ctx); err != nil {
				zap.S().Fatalw("running initial migration", "error", err)
			}
		} else {
			zap.S().Info("Run persistence disabled")
		}

		engine := solvers.NewEngine(estimation.WithClassifier(
			estimation.NewClassifier(estimation.WithThreshold(cfg.Estimation.RegimeThreshold)),
		))
		zap.S().Infow("Estimation engine ready",
			"models", engine.Models(),
			"regime_threshold", engine.Classifier().Threshold(),
			"unit_system", cfg.Estimation.UnitSystem)

		var serverOpts []apiserver.Option
		switch cfg.Service.EventsWriter {
		case "stdout":
			producer := events.NewEventProducer(&events.StdoutWriter{})
			defer func() { _ = producer.Close() }()
			serverOpts = append(serverOpts, apiserver.WithEvents(producer))
			zap.S().Info("Run events written to stdout")
		case "", "none":
		default:
			zap.S().Fatalw("unknown events writer", "writer", cfg.Service.EventsWriter)
		}

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, runStore, engine, listener, serverOpts...)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating metrics listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, runStore)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("failed to run metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
