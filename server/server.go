package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/customeros/mailtickets/api"
	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/repository"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/services"
	"github.com/customeros/mailtickets/services/storage"
)

type Server struct {
	config       *config.Config
	log          logger.Logger
	httpServer   *http.Server
	router       *gin.Engine
	services     *services.Services
	metrics      *metrics.Metrics
	registry     *prometheus.Registry
	tracerCloser io.Closer
}

func NewServer(cfg *config.Config, ticketingDB *gorm.DB) (*Server, error) {
	// Initialize logger
	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	// Initialize tracing
	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return nil, fmt.Errorf("could not initialize jaeger tracer: %w", err)
	}
	opentracing.SetGlobalTracer(tracer)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry)

	attachmentStorage := storage.NewFromConfig(cfg.StorageConfig)
	repos := repository.InitRepositories(ticketingDB, attachmentStorage)

	svcs, err := services.InitServices(cfg, appLogger, repos, attachmentStorage, appMetrics)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	return &Server{
		config:       cfg,
		log:          appLogger,
		router:       router,
		services:     svcs,
		metrics:      appMetrics,
		registry:     registry,
		tracerCloser: closer,
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppConfig.APIPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *Server) Initialize(ctx context.Context) error {
	s.log.Info("Seeding default ticket statuses and priorities...")
	if err := s.services.TicketService.SeedTerms(ctx); err != nil {
		return err
	}

	api.RegisterRoutes(s.router, s.services, s.config.AppConfig, s.log, s.metrics, s.registry)

	return nil
}

func (s *Server) wrapGoroutine(name string, fn func()) {
	defer tracing.RecoverAndLogToJaeger(s.log.With("process", name))
	fn()
}

func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Initialize(ctx); err != nil {
		return err
	}

	go s.wrapGoroutine("http_server", func() {
		s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Errorf("HTTP server error: %v", err)
		}
	})
	s.log.Info("Mailtickets is now running. Press Ctrl+C to exit.")

	return s.waitForShutdown()
}

func (s *Server) waitForShutdown() error {
	defer tracing.RecoverAndLogToJaeger(s.log.With("process", "shutdown"))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	s.log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Errorf("HTTP server shutdown error: %v", err)
	} else {
		s.log.Info("HTTP server shut down successfully")
	}

	if err := s.services.Close(); err != nil {
		s.log.Warnf("closing redis client: %v", err)
	}

	if s.tracerCloser != nil {
		s.tracerCloser.Close()
	}

	return s.log.Sync()
}
