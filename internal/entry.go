// Package internal wires configuration, the Joplin client, the settings store
// and the command service into the server, one-shot and MCP entry points.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/randomnote/internal/api"
	"github.com/starford/randomnote/internal/commands"
	"github.com/starford/randomnote/internal/joplin"
	"github.com/starford/randomnote/internal/mcpserver"
	"github.com/starford/randomnote/internal/selector"
	"github.com/starford/randomnote/internal/settings"
	"github.com/starford/randomnote/internal/sse"
)

type components struct {
	client *joplin.Client
	store  settings.Backend
}

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) open() (*components, error) {
	cfg := a.config
	store, err := settings.Open(cfg.Settings.Driver, cfg.Settings.Path)
	if err != nil {
		return nil, fmt.Errorf("init settings: %w", err)
	}
	return &components{
		client: joplin.NewClient(cfg.Joplin.BaseURL, cfg.Joplin.Token, cfg.Joplin.Timeout),
		store:  store,
	}, nil
}

func (a *application) service(c *components, nav commands.Navigator) *commands.Service {
	opts := []selector.Option{selector.WithLogger(a.logger)}
	if a.rand != nil {
		opts = append(opts, selector.WithRand(a.rand))
	}
	return commands.NewService(selector.New(c.client, opts...), c.store, nav, a.logger)
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}
	logger := app.logger
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("joplin_url", cfg.Joplin.BaseURL),
		slog.String("settings_driver", cfg.Settings.Driver),
		slog.String("settings_path", cfg.Settings.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	c, err := app.open()
	if err != nil {
		return err
	}
	defer c.store.Close()

	if err := c.client.Ping(ctx); err != nil {
		logger.Warn("joplin data api unreachable", slog.String("error", err.Error()))
	}

	broker := sse.NewBroker()
	defer broker.Close()

	svc := app.service(c, broker)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := c.client.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"joplin unreachable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Settings.Driver == settings.DriverFile {
		g.Go(func() error {
			if err := settings.Watch(gCtx, cfg.Settings.Path, logger, broker.SettingsUpdated); err != nil {
				logger.Warn("settings watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		// Ends open event streams so Shutdown does not wait on them.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// Exec runs a single action against the configured stores. Opened notes are
// printed as Joplin callback URLs unless WithNavigator is given.
func Exec(ctx context.Context, fn func(ctx context.Context, svc *commands.Service) error, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	return app.exec(ctx, fn)
}

// ServeMCP serves the action tools over stdio until stdin closes.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	// stdout carries the protocol.
	app.out = os.Stderr
	return app.exec(ctx, func(_ context.Context, svc *commands.Service) error {
		return mcpserver.New(svc, app.version).ServeStdio()
	})
}

func (a *application) exec(ctx context.Context, fn func(ctx context.Context, svc *commands.Service) error) error {
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: a.config.App.LogLevel,
		}))
	}
	if a.navigator == nil {
		a.navigator = joplin.URLNavigator{W: a.out}
	}

	c, err := a.open()
	if err != nil {
		return err
	}
	defer c.store.Close()

	return fn(ctx, a.service(c, a.navigator))
}

// Notebooks lists every notebook of the configured Joplin instance.
func Notebooks(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	client := joplin.NewClient(cfg.Joplin.BaseURL, cfg.Joplin.Token, cfg.Joplin.Timeout)
	nbs, err := client.Notebooks(ctx)
	if err != nil {
		return fmt.Errorf("list notebooks: %w", err)
	}
	return printNotebooks(app.out, nbs)
}
