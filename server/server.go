// Package server exposes the measurement service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/net/resp"
	"github.com/ncobase/measure/service"
)

// Server serves the measurement API.
type Server struct {
	addr   string
	svc    *service.Service
	stats  *data.StatsCollector
	logger *logger.Logger
	engine *gin.Engine
}

// New creates the server and its router. stats may be nil.
func New(cfg *config.Config, svc *service.Service, stats *data.StatsCollector, l *logger.Logger) *Server {
	switch cfg.RunMode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(cfg.RunMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		svc:    svc,
		stats:  stats,
		logger: l,
	}
	if cfg.Server != nil {
		s.addr = cfg.Server.Addr()
	}
	s.engine = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(traceMiddleware())
	r.Use(s.loggerMiddleware())

	r.GET("/health", s.health)
	r.GET("/debug/stats", s.debugStats)

	h := &handler{svc: s.svc, logger: s.logger}
	api := r.Group("/api/v1")
	{
		api.GET("/measurements", h.readFleet)
		api.POST("/measurements", h.write)
		api.POST("/measurements/query", h.readMatrix)
		api.GET("/measurements/:host/:type", h.readOne)
		api.GET("/hosts/:host/measurements", h.readHost)
	}

	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound("route not found"))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof(context.Background(), "listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info(shutdownCtx, "shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	if err := s.svc.Ping(c.Request.Context()); err != nil {
		s.logger.Warnf(c.Request.Context(), "health check failed: %v", err)
		resp.Fail(c.Writer, resp.Unavailable("storage unreachable", map[string]string{"status": "unhealthy"}))
		return
	}
	resp.Success(c.Writer, map[string]string{"status": "healthy"})
}

func (s *Server) debugStats(c *gin.Context) {
	stats := map[string]any{"writes": s.svc.WriteStats()}
	if s.stats != nil {
		stats["store"] = s.stats.Snapshot()
	}
	resp.Success(c.Writer, stats)
}
