// internal/server/server.go

// Package server exposes the analysis pipeline over HTTP: workbook upload,
// pre-parsed sheet submission, and recommendation lookup.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"solar-insight/internal/common/config"
	"solar-insight/internal/common/database"
	"solar-insight/internal/common/logger"
	"solar-insight/internal/common/observability"
	"solar-insight/internal/engine/recommend"
	"solar-insight/internal/ingest"
	"solar-insight/internal/store"
)

type Server struct {
	config    *config.Config
	engine    *http.Server
	router    *gin.Engine
	parser    *ingest.Parser
	assembler *recommend.Assembler
	store     *store.Store
	db        *database.RedisClient
	postgres  pinger
	obs       *observability.Observability
	logger    logger.Logger
}

// pinger covers the health probes for both backing stores.
type pinger interface {
	PingContext(ctx context.Context) error
}

func New(
	cfg *config.Config,
	parser *ingest.Parser,
	assembler *recommend.Assembler,
	st *store.Store,
	redis *database.RedisClient,
	postgres pinger,
	obs *observability.Observability,
	log logger.Logger,
) *Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    cfg,
		router:    gin.New(),
		parser:    parser,
		assembler: assembler,
		store:     st,
		db:        redis,
		postgres:  postgres,
		obs:       obs,
		logger:    log.With(map[string]interface{}{"component": "http-server"}),
	}
	s.routes()
	s.engine = &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestMetrics())
	s.router.MaxMultipartMemory = int64(s.config.Server.MaxUploadSizeMB) << 20

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		api.POST("/analysis", s.handleAnalyzeUpload)
		api.POST("/analysis/sheets", s.handleAnalyzeSheets)
		api.GET("/analysis/:id", s.handleGetAnalysis)
	}
}

// requestMetrics records route, status and latency for every request.
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.obs.RecordRequest(c.Request.Context(), route, c.Writer.Status(),
			float64(time.Since(start).Milliseconds()))
	}
}

// Start blocks until the listener fails or the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", map[string]interface{}{
		"addr": s.config.Server.ListenAddr,
	})
	err := s.engine.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.engine.Shutdown(ctx)
}

// Router exposes the handler tree; used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}
