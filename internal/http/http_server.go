package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/gradebench.net/internal/core/ports/primary"
	"gitlab.com/gradebench.net/internal/core/ports/secondary"
	"gitlab.com/gradebench.net/internal/core/services/grading"
	"gitlab.com/gradebench.net/internal/handlers"
	gradinghdl "gitlab.com/gradebench.net/internal/handlers/grading"
)

type ServiceProvider struct {
	gradingService grading.IGradingService
	jwtService     primary.JWTService
	runLock        secondary.RunLock
	runLockTTL     time.Duration
}

func NewServiceProvider(
	gradingService grading.IGradingService,
	jwtService primary.JWTService,
	runLock secondary.RunLock,
	runLockTTL time.Duration,
) *ServiceProvider {
	return &ServiceProvider{
		gradingService: gradingService,
		jwtService:     jwtService,
		runLock:        runLock,
		runLockTTL:     runLockTTL,
	}
}

const defaultWriteTimeout = 5 * time.Minute

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	// WriteTimeout must cover a full submit run.
	WriteTimeout time.Duration
	logger       primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		WriteTimeout:    defaultWriteTimeout,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.gradingService == nil || s.ServiceProvider.jwtService == nil || s.ServiceProvider.runLock == nil {
		return errors.New("http server: missing service dependencies")
	}

	r := mux.NewRouter()
	r.Use(handlers.RequestID)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.ResponseWithJson(w, http.StatusOK, map[string]string{"service": s.ServiceName, "status": "ok"})
	}).Methods("GET")

	mw := handlers.New(s.ServiceProvider.jwtService, s.logger)
	gradinghdl.
		NewHandler(s.ServiceProvider.gradingService, s.ServiceProvider.runLock, s.ServiceProvider.runLockTTL, s.logger).
		RegisterRoutes(r, mw)

	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
