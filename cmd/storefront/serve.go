package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Humphrey-He/storefront/configs"
	"github.com/Humphrey-He/storefront/internal/server"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := root.build(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			a.vc.Subscribe(func(c *configs.Config) {
				a.logger.Info("configuration reloaded", zap.String("log_level", c.Log.Level))
			})
			a.logger.Watch(a.vc)
			if a.vc.Get().Extensions.HotReload.Enable {
				a.vc.EnableHotReload()
			}
			go reloadOnHangup(ctx, a)

			cfg := a.vc.Get().Server
			if addr != "" {
				cfg.Addr = addr
			}
			var opts []server.RouterOption
			if a.metrics != nil {
				opts = append(opts, server.WithMetrics(a.metrics))
			}
			return server.New(cfg, a.service, a.logger.Logger, opts...).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

func reloadOnHangup(ctx context.Context, a *app) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := a.vc.Reload(); err != nil {
				a.logger.Warn("reload on SIGHUP failed", zap.Error(err))
			}
		}
	}
}
