package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cert-inventory/internal/config"
	"cert-inventory/internal/data"
	"cert-inventory/internal/jobs"
	"cert-inventory/internal/middlewares"
	"cert-inventory/internal/receiver"
)

type Server struct {
	name        string
	cfg         *config.Config
	logger      *slog.Logger
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	jobManager  *jobs.JobManager
	sink        receiver.Sink
	tls         *config.TLSConfig
	cancel      context.CancelFunc
}

// New builds the inventory dashboard server. The inventory is collected once before New
// returns so the first request already has a snapshot.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	pipeline, err := NewPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	snapshots := data.NewMemCache(logger)
	snapshots.Publish(ctx, pipeline.Run())

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, snapshots, nil)

	jobManager := jobs.NewJobManager(logger)
	if cfg.Inventory.RefreshInterval > 0 {
		jobManager.Register(jobs.NewInventoryRefreshJob(pipeline, snapshots, cfg.Inventory.RefreshInterval, logger))
	}

	return &Server{
		name:   "dashboard",
		cfg:    cfg,
		logger: logger,
		appCtx: appCtx,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:           setupRouter(appCtx),
			ReadHeaderTimeout: 10 * time.Second,
		},
		debugServer: newDebugServer(cfg),
		jobManager:  jobManager,
		cancel:      cancel,
	}, nil
}

// NewReceiver builds the report upload server backed by the configured sink.
func NewReceiver(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	sink, err := receiver.NewSink(&cfg.Receiver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up %s sink: %w", cfg.Receiver.Sink, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	if pinger, ok := sink.(interface{ Ping(context.Context) error }); ok {
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := pinger.Ping(pingCtx); err != nil {
			logger.Warn("report sink is not reachable yet", "sink", sink.Name(), "error", err)
		}
		pingCancel()
	}

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, nil, sink)

	return &Server{
		name:   "receiver",
		cfg:    cfg,
		logger: logger,
		appCtx: appCtx,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.Receiver.Host, strconv.Itoa(cfg.Receiver.Port)),
			Handler:           setupReceiverRouter(appCtx),
			ReadHeaderTimeout: 10 * time.Second,
		},
		debugServer: newDebugServer(cfg),
		jobManager:  jobs.NewJobManager(logger),
		sink:        sink,
		tls:         cfg.Receiver.TLS,
		cancel:      cancel,
	}, nil
}

func newDebugServer(cfg *config.Config) *http.Server {
	if cfg.Server.Debug == nil || !cfg.Server.Debug.Enabled {
		return nil
	}

	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Debug.Host, strconv.Itoa(cfg.Server.Debug.Port)),
		Handler:           setupDebugRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) listen() error {
	if s.tls != nil {
		return s.httpServer.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
	}
	return s.httpServer.ListenAndServe()
}

// Start serves until SIGINT/SIGTERM or a listener failure, then shuts everything down.
func (s *Server) Start() error {
	s.jobManager.Start(s.appCtx)

	go func() {
		s.logger.Info("Server Started", "server", s.name, "address", s.httpServer.Addr, "tls", s.tls != nil)
		if err := s.listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "server", s.name, "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Metrics server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	return s.Shutdown()
}

// Shutdown stops the jobs and listeners and closes the sink.
func (s *Server) Shutdown() error {
	defer s.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info("Shutting Down Server", "server", s.name)

	s.jobManager.Shutdown(shutdownCtx)

	var errs []error

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		errs = append(errs, err)
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	if s.sink != nil {
		if err := s.sink.Close(); err != nil {
			s.logger.Error("failed to close report sink", "sink", s.sink.Name(), "error", err)
			errs = append(errs, err)
		}
	}

	s.logger.Info("Server Exited", "server", s.name)
	return errors.Join(errs...)
}
