package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Humphrey-He/storefront/configs"
	"github.com/Humphrey-He/storefront/internal/logging"
	"github.com/Humphrey-He/storefront/internal/metrics"
	"github.com/Humphrey-He/storefront/internal/service"
	"github.com/Humphrey-He/storefront/internal/session"
	"github.com/Humphrey-He/storefront/pkg/catalog"
	"github.com/Humphrey-He/storefront/pkg/filter"
	"github.com/Humphrey-He/storefront/pkg/loader"
	"github.com/Humphrey-He/storefront/pkg/money"
)

type rootOptions struct {
	configFile  string
	catalogPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront catalog, cart and checkout service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "configuration file (yaml or json)")
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog document, overrides store.catalog_path")

	cmd.AddCommand(
		newServeCommand(opts),
		newProductsCommand(opts),
		newConfigCommand(opts),
	)
	return cmd
}

// app holds everything a subcommand needs.
type app struct {
	vc       *configs.ViperConfig
	logger   *logging.Logger
	catalog  *catalog.Catalog
	sessions *session.Store
	metrics  *metrics.Metrics
	service  *service.StoreService
}

func (o *rootOptions) build(ctx context.Context) (*app, error) {
	vc, err := configs.NewViperConfig(o.configFile)
	if err != nil {
		return nil, err
	}
	cfg := vc.Get()

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	path := cfg.Store.CatalogPath
	if o.catalogPath != "" {
		path = o.catalogPath
	}
	c, err := loader.ForPath(path, func(err error) {
		logger.Warn("catalog unavailable, using built-in sample", zap.String("path", path), zap.Error(err))
	}).Load(ctx)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", zap.Int("products", c.Len()), zap.Int("categories", len(c.Categories())))

	tag, err := language.Parse(cfg.Store.Locale)
	if err != nil {
		tag = filter.DefaultLocale
	}
	sessions := session.New(session.Config{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		MaxSessions:     cfg.Session.MaxSessions,
	}, logger.Named("session"))

	var m *metrics.Metrics
	if cfg.Extensions.Metrics.Enable {
		level, err := metrics.ParseLevel(cfg.Extensions.Metrics.Level)
		if err != nil {
			level = metrics.Basic
		}
		m = metrics.New(level)
	}

	svc := service.NewStoreService(c, sessions,
		service.WithLogger(logger.Named("service")),
		service.WithMetrics(m),
		service.WithEngine(filter.New(filter.WithLocale(tag))),
		service.WithFormatter(money.NewFormatter(cfg.Store.Locale, cfg.Store.CurrencyLabel)),
		service.WithContactPhone(cfg.Store.ContactPhone),
	)

	return &app{
		vc:       vc,
		logger:   logger,
		catalog:  c,
		sessions: sessions,
		metrics:  m,
		service:  svc,
	}, nil
}

func (a *app) close() {
	_ = a.sessions.Close()
	_ = a.logger.Close()
}
