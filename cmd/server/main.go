package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/ccboard/internal/server/apikey"
	"github.com/iudanet/ccboard/internal/server/config"
	"github.com/iudanet/ccboard/internal/server/handlers"
	"github.com/iudanet/ccboard/internal/server/middleware"
	"github.com/iudanet/ccboard/internal/server/oauth"
	"github.com/iudanet/ccboard/internal/server/session"
	"github.com/iudanet/ccboard/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Сервер останавливается по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	keys := apikey.NewService(cfg.Secret, st)
	sessions := session.NewService(cfg.Secret, cfg.SessionTTL)
	provider := oauth.NewGithubProvider(
		cfg.GithubClientID,
		cfg.GithubClientSecret,
		cfg.PublicURL+"/api/auth/github",
		cfg.RequiredEmailDomain,
	)

	resolver := middleware.NewResolver(logger, keys, sessions, st)

	submitHandler := handlers.NewSubmitHandler(logger, st, st, cfg.SubmitRateLimit, cfg.SubmitRateWindow)
	leaderboardHandler := handlers.NewLeaderboardHandler(logger, st)
	meHandler := handlers.NewMeHandler(logger)
	keyHandler := handlers.NewKeyHandler(logger, keys, st)
	oauthHandler := handlers.NewOAuthHandler(logger, provider, st, keys, sessions)
	configHandler := handlers.NewConfigHandler(logger, cfg.PublicURL)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	mux := newRouter(resolver, routes{
		submit:      submitHandler,
		leaderboard: leaderboardHandler,
		me:          meHandler,
		key:         keyHandler,
		oauth:       oauthHandler,
		config:      configHandler,
		health:      healthHandler,
	})

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingMiddleware(logger)(mux),
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.ListenAddr),
			slog.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("ccboard Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
