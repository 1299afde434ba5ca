package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ganot/checkvault/internal/config"
	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/domain/session"
	"github.com/ganot/checkvault/internal/domain/template"
	"github.com/ganot/checkvault/internal/mcp"
	"github.com/ganot/checkvault/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("CHECKVAULT_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openBackend(ctx, cfg.DB, logger)
	if err != nil {
		logger.Error("failed to open backend", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	defer store.close()

	if cfg.Auth.BootstrapToken != "" {
		if err := store.apiKeys.Add(ctx, cfg.Auth.BootstrapToken, cfg.Auth.BootstrapOwner, "bootstrap"); err != nil {
			logger.Error("failed to register bootstrap token", "error", err)
			os.Exit(1)
		}
		logger.Info("bootstrap token registered", "owner", cfg.Auth.BootstrapOwner)
	}

	templates := template.NewRegistry()
	activitySvc := activity.NewService(store.activity, logger)
	projectSvc := project.NewService(store.documents, templates, activitySvc, logger)
	sessionSvc := session.NewService(logger)

	projectSvc.FetchAll(ctx)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:  projectSvc,
			Sessions:  sessionSvc,
			Activity:  activitySvc,
			Templates: templates,
		},
		Resolver:      store.apiKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("failed to create mcp server", "error", err)
		os.Exit(1)
	}

	if cfg.Session.IdleTimeout > 0 {
		go sweepSessions(ctx, logger, sessionSvc, cfg.Session.IdleTimeout)
	}

	// Branch based on transport mode
	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, logger, mcpServer)
		return
	}

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		authMiddleware = transport.AuthMiddleware(store.apiKeys)
	}
	router := transport.NewServer(newMCPHandler(mcpServer, cfg.Session.IdleTimeout), transport.Deps{
		Projects: projectSvc,
		Sessions: sessionSvc,
		Logger:   logger,
	}, authMiddleware)
	runHTTPMode(ctx, logger, router, cfg.Server.Host, cfg.Server.Port, cfg.Auth.Enabled)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}

func newMCPHandler(mcpServer *sdkmcp.Server, idleTimeout time.Duration) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: idleTimeout,
		},
	)
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int, authEnabled bool) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "auth", authEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// sweepSessions periodically drops the risk flags of idle sessions.
func sweepSessions(ctx context.Context, logger *slog.Logger, sessions *session.Service, idle time.Duration) {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(idle); n > 0 {
				logger.Debug("swept idle sessions", "count", n)
			}
		}
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
