package sandbox

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alovak/directplus/internal/middleware"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// App runs the sandbox processor over HTTP.
type App struct {
	srv    *http.Server
	wg     *sync.WaitGroup
	Addr   string
	logger *slog.Logger
	config *Config
	repo   *Repository
}

// NewApp builds an App. A nil repo gets a fresh in-memory one; passing the same
// repo to two apps gives a primary and a backup that share state.
func NewApp(logger *slog.Logger, config *Config, repo *Repository) *App {
	logger = logger.With(slog.String("app", "sandbox"))

	if config == nil {
		config = DefaultConfig()
	}
	if repo == nil {
		repo = NewRepository()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
		repo:   repo,
	}
}

// Router wires the processor endpoint and the health checks.
func (a *App) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(a.logger))

	api := NewAPI(NewService(a.repo, a.config))
	api.AppendRoutes(router)

	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.repo.Ping(ctx); err != nil {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	return router
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.logger.Info("http server started", slog.String("addr", a.Addr), slog.String("path", a.config.Path))

		if err := a.srv.Serve(l); err != nil && err != http.ErrServerClosed {
			a.logger.Error("serving http", "err", err)
		}
		a.logger.Info("http server stopped")
	}()

	return nil
}

// URL is the endpoint a gateway should post questions to.
func (a *App) URL() string {
	return "http://" + a.Addr + a.config.Path
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	if a.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(ctx); err != nil {
			a.logger.Error("shutting down http server", "err", err)
		}
	}

	a.wg.Wait()

	a.logger.Info("app stopped")
}
