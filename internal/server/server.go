// Package server wires the storefront HTTP routes and runs the listener.
//
// Package server 连接店面HTTP路由并运行监听器。
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Humphrey-He/storefront/configs"
	"github.com/Humphrey-He/storefront/internal/metrics"
	"github.com/Humphrey-He/storefront/internal/server/handler"
	"github.com/Humphrey-He/storefront/internal/server/middleware"
	"github.com/Humphrey-He/storefront/internal/service"
)

type routerOptions struct {
	metrics *metrics.Metrics
}

// RouterOption configures NewRouter.
type RouterOption func(*routerOptions)

// WithMetrics records request metrics in m and serves them at GET /metrics.
func WithMetrics(m *metrics.Metrics) RouterOption {
	return func(o *routerOptions) { o.metrics = m }
}

// NewRouter builds the gin engine with every storefront route.
//
// NewRouter 构建包含所有店面路由的gin引擎。
//
// Parameters:
//   - svc: The store service behind the handlers
//   - logger: Request and panic logger
//   - opts: Optional features such as metrics
//
// Returns:
//   - *gin.Engine: The configured router
func NewRouter(svc *service.StoreService, logger *zap.Logger, opts ...RouterOption) *gin.Engine {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	if o.metrics != nil {
		router.Use(middleware.Metrics(o.metrics))
	}
	router.Use(middleware.Recovery(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": svc.SessionStats()})
	})
	if o.metrics != nil {
		exporter := metrics.NewPrometheusExporter(o.metrics)
		exporter.AddGauge("sessions", "Live cart sessions", func() float64 {
			return float64(svc.SessionStats().Sessions)
		})
		exporter.AddGauge("session_evictions_total", "Sessions evicted for capacity", func() float64 {
			return float64(svc.SessionStats().Evictions)
		})
		router.GET("/metrics", gin.WrapH(exporter))
	}

	products := handler.NewProductHandler(svc)
	carts := handler.NewCartHandler(svc)

	api := router.Group("/api")
	api.GET("/products", products.ListProducts)
	api.GET("/products/:id", products.GetProduct)
	api.GET("/categories", products.ListCategories)
	api.GET("/facets", products.GetFacets)

	api.POST("/cart", carts.CreateCart)
	api.GET("/cart/:session", carts.GetCart)
	api.POST("/cart/:session/items", carts.AddItem)
	api.PUT("/cart/:session/items/:id", carts.UpdateItem)
	api.DELETE("/cart/:session/items/:id", carts.RemoveItem)
	api.POST("/cart/:session/checkout", carts.Checkout)

	return router
}

// Server is the storefront HTTP server.
type Server struct {
	http   *http.Server
	cfg    configs.ServerConfig
	logger *zap.Logger
}

// New creates a Server for cfg.
func New(cfg configs.ServerConfig, svc *service.StoreService, logger *zap.Logger, opts ...RouterOption) *Server {
	gin.SetMode(cfg.Mode)
	return &Server{
		http: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(svc, logger, opts...),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
//
// Run 持续提供服务直到ctx被取消，然后优雅地关闭。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(shutdownCtx)
}
