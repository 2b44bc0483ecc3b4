package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skufu/healthlens/internal/api"
	"github.com/Skufu/healthlens/internal/auth"
	"github.com/Skufu/healthlens/internal/chat"
	"github.com/Skufu/healthlens/internal/config"
	"github.com/Skufu/healthlens/internal/contact"
	"github.com/Skufu/healthlens/internal/detect"
	"github.com/Skufu/healthlens/internal/gamification"
	"github.com/Skufu/healthlens/internal/news"
	"github.com/Skufu/healthlens/internal/storage"
)

func newServeCmd(a *app) *cobra.Command {
	var staticDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if staticDir == "" {
				staticDir = detectStaticRoot()
			}
			return runServer(cmd.Context(), a.cfg, a.log, staticDir)
		},
	}
	cmd.Flags().StringVar(&staticDir, "static", "", "Directory holding index.html to serve (default: auto-detect)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, log *zap.Logger, staticRoot string) error {
	gin.SetMode(cfg.GinMode)

	var db api.HealthChecker
	var contacts contact.Repository = contact.NewMemoryRepository()
	if cfg.EnableDB {
		pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer pool.Close()

		if err := storage.RunMigrations(cfg.DatabaseURL, log); err != nil {
			return err
		}
		db = pool
		contacts = contact.NewPostgresRepository(pool)
	} else {
		log.Info("database disabled, contact messages kept in memory")
	}

	chain, err := buildChain(ctx, cfg, log)
	if err != nil {
		return err
	}

	journeys := gamification.NewRegistry()
	defer journeys.Close()

	router := api.NewRouter(api.Deps{
		Log:          log,
		DB:           db,
		Analyzer:     detect.NewAnalyzer(detect.DefaultCatalog(), log),
		Chat:         chat.NewService(chat.NewStore(), chain),
		Journeys:     journeys,
		News:         news.NewClient(cfg.NewsAPIKey, cfg.NewsAPIURL, cfg.UpstreamTimeout, cfg.NewsCacheTTL, log),
		Contact:      contact.NewService(contacts, log),
		Auth:         auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.UpstreamTimeout),
		AllowOrigins: cfg.AllowOrigins,
		StaticRoot:   staticRoot,
	})

	// No WriteTimeout: journey event streams stay open.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	server.RegisterOnShutdown(journeys.Close)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info("server listening", zap.String("port", cfg.Port), zap.String("static", staticRoot))
	return waitForShutdown(server, errCh, log)
}

// buildChain wires the chat providers in fallback order. Providers without
// credentials stay in the chain and report themselves as not configured.
func buildChain(ctx context.Context, cfg *config.Config, log *zap.Logger) (*chat.Chain, error) {
	gemini, err := chat.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return chat.NewChain(log,
		chat.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.UpstreamTimeout),
		gemini,
		chat.NewHuggingFaceProvider(cfg.HuggingFaceURL, cfg.HuggingFaceToken, cfg.HuggingFaceEnabled, cfg.UpstreamTimeout),
	), nil
}

func waitForShutdown(server *http.Server, errCh <-chan error, log *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

// detectStaticRoot looks for a bundled front end in the working directory and its
// two parents. Empty means none was found.
func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "index.html")) {
			return dir
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
