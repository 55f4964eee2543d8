package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/dtex/neuron/api/v1"
	"github.com/dtex/neuron/internal/config"
	"github.com/dtex/neuron/internal/handlers"
	"github.com/dtex/neuron/internal/server"
	"github.com/dtex/neuron/internal/services"
	"github.com/dtex/neuron/pkg/scheduler"
	"github.com/dtex/neuron/pkg/serializer"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(opts *globalOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler and its HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				opts.cfg.Server.HTTPPort = port
			}
			return serve(cmd.Context(), opts.cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8000, "HTTP port")
	return cmd
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := zap.S().Named("serve")

	manager, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := manager.Close(); err != nil {
			log.Warnw("failed to close manager", "error", err)
		}
	}()

	if err := registerJobs(manager, cfg.Jobs); err != nil {
		return err
	}

	if cfg.Cache.Enabled {
		if err := manager.Load(ctx); err != nil {
			return fmt.Errorf("load cache: %w", err)
		}
	}

	handler := handlers.New(services.NewJobService(manager))
	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handler)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}
	if err := manager.Flush(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Warnw("cache flush", "error", err)
	}
	return nil
}

func newManager(ctx context.Context, cfg *config.Configuration) (*scheduler.Manager, error) {
	reg := serializer.NewRegistry()
	mopts := []scheduler.Option{
		scheduler.WithConcurrency(cfg.Scheduler.Concurrency),
		scheduler.WithEmitErrors(cfg.Scheduler.EmitErrors),
		scheduler.WithRegistry(reg),
	}

	if cfg.Cache.Enabled {
		c, err := openCache(ctx, cfg.Cache, reg)
		if err != nil {
			return nil, err
		}
		mopts = append(mopts, scheduler.WithCache(c))
	}

	manager := scheduler.NewManager(mopts...)
	manager.Subscribe(func(e scheduler.Event) {
		if e.Type == scheduler.EventError {
			zap.S().Named("serve").Errorw("scheduler error", "error", e.Err)
		}
	})
	return manager, nil
}

// registerJobs adds the script jobs declared in the configuration.
func registerJobs(manager *scheduler.Manager, jobs []config.Job) error {
	for _, j := range jobs {
		script, err := serializer.Compile(j.Script)
		if err != nil {
			return fmt.Errorf("job %s: %w", j.Name, err)
		}
		if _, err := manager.AddJob(j.Name, scheduler.JobOptions{
			Concurrency: j.Concurrency,
			Script:      script,
		}); err != nil {
			return err
		}
		zap.S().Named("serve").Infow("job registered", "job", j.Name, "concurrency", j.Concurrency)
	}
	return nil
}
