package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/kubev2v/patchcord-planner/pkg/log"
	"go.uber.org/zap"
)

// WebServer serves the static web UI next to the API.
type WebServer struct {
	root       string
	listener   net.Listener
	httpServer *http.Server
}

func NewWebServer(root, logLevel string, listener net.Listener) (*WebServer, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("web root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("web root %s is not a folder", root)
	}

	router := chi.NewRouter()
	router.Use(
		log.ConditionalLogger(logLevel, zap.L(), "web_server"),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}),
	)
	router.Handle("/*", http.FileServer(http.Dir(root)))

	return &WebServer{
		root:       root,
		listener:   listener,
		httpServer: &http.Server{Handler: router},
	}, nil
}

func (w *WebServer) Handler() http.Handler {
	return w.httpServer.Handler
}

func (w *WebServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		w.httpServer.SetKeepAlivesEnabled(false)
		_ = w.httpServer.Shutdown(ctxTimeout)
		zap.S().Named("web_server").Info("web server terminated")
	}()

	zap.S().Named("web_server").Infof("serving %s on http://%s", w.root, w.listener.Addr().String())
	if err := w.httpServer.Serve(w.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
