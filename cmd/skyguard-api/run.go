package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/chasta/skyguard/internal/api_server"
	"github.com/chasta/skyguard/internal/config"
	"github.com/chasta/skyguard/internal/events"
	"github.com/chasta/skyguard/internal/store"
	"github.com/chasta/skyguard/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedOnStart bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the skyguard api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		if seedOnStart {
			if err := store.Seed(ctx); err != nil {
				zap.S().Fatalw("seeding content", "error", err)
			}
		}

		producer := newProducer(cfg.Service.Events)
		defer func() {
			if err := producer.Close(); err != nil {
				zap.S().Warnw("failed to close event producer", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, store, listener, producer)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, store)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("failed to run metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Insert the default landing content before serving")
}

func newProducer(cfg config.Events) *events.EventProducer {
	var w events.Writer = events.DiscardWriter{}
	if cfg.Enabled {
		w = &events.StdoutWriter{}
	}
	return events.NewEventProducer(w, events.WithOutputTopic(cfg.Topic))
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
