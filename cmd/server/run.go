package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ganot/formbuilder/internal/config"
	"github.com/ganot/formbuilder/internal/domain/form"
	"github.com/ganot/formbuilder/internal/domain/question"
	"github.com/ganot/formbuilder/internal/domain/response"
	"github.com/ganot/formbuilder/internal/logger"
	"github.com/ganot/formbuilder/internal/mcp"
	"github.com/ganot/formbuilder/internal/metrics"
	"github.com/ganot/formbuilder/internal/sqlite"
	"github.com/ganot/formbuilder/internal/transport"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	cfg     config.Config
	log     zerolog.Logger
	db      *sqlite.DB
	metrics *metrics.Metrics
	logFile io.Closer

	questions *question.Service
	forms     *form.Service
	responses *response.Service
}

// newApp loads configuration, opens and migrates the store, and builds the
// domain services.
func newApp() (*app, error) {
	if configPath != "" {
		if err := os.Setenv("FORMBUILDER_CONFIG_PATH", configPath); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg}

	logCfg := logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}
	if cfg.Log.Path != "" {
		file, err := logger.OpenFile(cfg.Log.Path)
		if err != nil {
			return nil, fmt.Errorf("log file error: %w", err)
		}
		a.logFile = file
		logCfg.Output = file
		logCfg.Pretty = false
	}
	a.log = logger.New(logCfg)

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.close()
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(sqlite.Config{
		Path:            cfg.DB.Path,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.DB.ConnMaxIdleTime,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db

	if err := db.Migrate(); err != nil {
		a.close()
		return nil, err
	}

	if cfg.Metrics.Enabled {
		a.metrics = metrics.New()
		db.SetObserver(a.metrics)
		a.metrics.WatchDB(db.DB, "formbuilder")
	}

	a.questions = question.NewService(sqlite.NewQuestionRepository(db), cfg.Questions.Types, a.log)
	a.forms = form.NewService(sqlite.NewFormRepository(db), a.log)
	a.responses = response.NewService(sqlite.NewResponseRepository(db), response.Options{
		CountIgnoresFilters: cfg.Responses.CountIgnoresFilters,
	}, a.log)

	return a, nil
}

func (a *app) mcpServer() *mcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Questions: a.questions,
			Forms:     a.forms,
			Responses: a.responses,
		},
		Logger: a.log,
	})
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error().Err(err).Msg("failed to close database")
		}
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	opts := transport.Options{
		Logger:         a.log,
		Metrics:        a.metrics,
		CORSOrigins:    a.cfg.Server.CORSOrigins,
		TrustProxy:     a.cfg.Server.TrustProxy,
		BodyLimit:      a.cfg.Server.BodyLimit,
		RequestTimeout: a.cfg.Server.RequestTimeout,
	}
	if a.cfg.MCP.Enabled {
		opts.MCP = a.mcpServer().HTTPHandler()
	}

	handler := transport.NewServer(transport.Services{
		Questions: a.questions,
		Forms:     a.forms,
		Responses: a.responses,
		Health:    a.db,
	}, opts)

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().
			Str("addr", httpServer.Addr).
			Bool("mcp", a.cfg.MCP.Enabled).
			Bool("metrics", a.cfg.Metrics.Enabled).
			Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return waitForShutdown(ctx, a.log, httpServer, errCh, a.cfg.Server.ShutdownTimeout)
}

func runMigrate(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	version, dirty, err := a.db.SchemaVersion()
	if err != nil {
		return err
	}
	a.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("database migrated")
	return nil
}

func runMCP(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info().Msg("starting stdio transport")
	if err := a.mcpServer().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	a.log.Info().Msg("shutting down")
	return nil
}

func waitForShutdown(ctx context.Context, log zerolog.Logger, server *http.Server, errCh <-chan error, timeout time.Duration) error {
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info().Msg("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
