package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gridpoint/interconnect/internal/application"
	applicationdomain "github.com/gridpoint/interconnect/internal/application/domain"
	"github.com/gridpoint/interconnect/internal/config"
	"github.com/gridpoint/interconnect/internal/customer"
	"github.com/gridpoint/interconnect/internal/installer"
	"github.com/gridpoint/interconnect/internal/observability"
	obslogger "github.com/gridpoint/interconnect/internal/observability/logger"
	obsmetrics "github.com/gridpoint/interconnect/internal/observability/metrics"
	obstracing "github.com/gridpoint/interconnect/internal/observability/tracing"
	"github.com/gridpoint/interconnect/internal/statushistory"
	"github.com/gridpoint/interconnect/internal/system"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	customer.Module,
	installer.Module,
	system.Module,
	statushistory.Module,
	application.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

// NewEngine builds the gin engine with the shared middleware chain and the
// operational endpoints.
func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	log            *zap.Logger
	applicationSvc applicationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Log            *zap.Logger
	ApplicationSvc applicationdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		log:            p.Log.Named("server"),
		applicationSvc: p.ApplicationSvc,
	}
}

// RegisterRoutes mounts the portal API.
func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/workflow/stages", s.ListStages)

	api.GET("/applications", s.ListApplications)
	api.POST("/applications", s.CreateApplication)
	api.GET("/applications/:id", s.GetApplicationByID)
	api.POST("/applications/:id/advance", s.AdvanceApplication)
	api.POST("/applications/:id/withdraw", s.WithdrawApplication)
	api.PATCH("/applications/:id/dates", s.SetApplicationStageDate)
	api.PATCH("/applications/:id/notes", s.SaveApplicationNotes)
	api.DELETE("/applications/:id", s.DeleteApplication)
}

// RunHTTP starts the listener and ties it to the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
