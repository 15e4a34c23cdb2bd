package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kubev2v/patchcord-planner/internal/config"
	handlers "github.com/kubev2v/patchcord-planner/internal/handlers/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/kubev2v/patchcord-planner/internal/service"
	"github.com/kubev2v/patchcord-planner/pkg/metrics"
	"github.com/kubev2v/patchcord-planner/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg       *config.Config
	directory rackplan.Directory
	listener  net.Listener
}

// New returns a new instance of the patch-cord planner API server.
func New(
	cfg *config.Config,
	directory rackplan.Directory,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:       cfg,
		directory: directory,
		listener:  listener,
	}
}

// Handler builds the router with its middleware chain. The request metrics
// middleware is passed in so that it is registered once per process.
func (s *Server) Handler(metricMiddleware *metrics.Middleware) http.Handler {
	router := chi.NewRouter()

	if metricMiddleware != nil {
		router.Use(metricMiddleware.Handler)
	}
	router.Use(
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	h := handlers.NewServiceHandler(service.NewCableService(s.directory))
	h.Routes(router)

	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: s.Handler(metricMiddleware)}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
