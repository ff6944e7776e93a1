package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rogue-api/internal/game"
	"github.com/KirkDiggler/rogue-api/internal/handlers/ws"
	"github.com/KirkDiggler/rogue-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rogue-api/internal/redis"
	"github.com/KirkDiggler/rogue-api/internal/repositories/gamestate"
	"github.com/KirkDiggler/rogue-api/internal/repositories/recipes"
	"github.com/KirkDiggler/rogue-api/internal/repositories/spells"
	"github.com/KirkDiggler/rogue-api/internal/repositories/templates"
)

// serverConfig is parsed from the environment; flags override the
// parsed values.
type serverConfig struct {
	Port        int    `env:"ROGUE_PORT" envDefault:"8080"`
	RedisAddr   string `env:"ROGUE_REDIS_ADDRESS"`
	DataDir     string `env:"ROGUE_DATA_DIR" envDefault:"data"`
	ArenaWidth  int    `env:"ROGUE_ARENA_WIDTH" envDefault:"40"`
	ArenaHeight int    `env:"ROGUE_ARENA_HEIGHT" envDefault:"24"`
	Seed        int64  `env:"ROGUE_SEED"`
}

var (
	flagPort      int
	flagRedisAddr string
	flagDataDir   string
	flagSeed      int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebSocket game server",
	Long:  `Start the game server: content is loaded from the data directory and sessions are served over WebSocket on /ws.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "listen port (overrides ROGUE_PORT)")
	serveCmd.Flags().StringVar(&flagRedisAddr, "redis-address", "", "redis address for session saves (overrides ROGUE_REDIS_ADDRESS)")
	serveCmd.Flags().StringVar(&flagDataDir, "data-dir", "", "content directory (overrides ROGUE_DATA_DIR)")
	serveCmd.Flags().Int64Var(&flagSeed, "seed", 0, "fixed session RNG seed (overrides ROGUE_SEED)")
}

func loadConfig(cmd *cobra.Command) (*serverConfig, error) {
	cfg := &serverConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = flagPort
	}
	if cmd.Flags().Changed("redis-address") {
		cfg.RedisAddr = flagRedisAddr
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	templateRepo, err := templates.NewInMemoryFromFile(filepath.Join(cfg.DataDir, "templates.json"))
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	spellRepo, err := spells.NewInMemoryFromFile(filepath.Join(cfg.DataDir, "spells.json"))
	if err != nil {
		return fmt.Errorf("load spells: %w", err)
	}
	recipeRepo, err := recipes.NewInMemoryFromFile(filepath.Join(cfg.DataDir, "recipes.json"))
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	slog.Info("content loaded", "data_dir", cfg.DataDir)

	var saves gamestate.Repository
	if cfg.RedisAddr != "" {
		client, err := redisclient.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		saves, err = gamestate.NewRedisRepository(&gamestate.Config{
			Client: client,
			Clock:  clock.New(),
		})
		if err != nil {
			return fmt.Errorf("create save repository: %w", err)
		}
		slog.Info("session saves enabled", "redis", cfg.RedisAddr)
	} else {
		slog.Warn("no redis address configured, sessions cannot be saved")
	}

	manager, err := game.NewManager(&game.ManagerConfig{
		Templates: templateRepo,
		Spells:    spellRepo,
		Recipes:   recipeRepo,
		Saves:     saves,
		Width:     cfg.ArenaWidth,
		Height:    cfg.ArenaHeight,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("create session manager: %w", err)
	}

	handler, err := ws.NewHandler(&ws.Config{Sessions: manager})
	if err != nil {
		return fmt.Errorf("create websocket handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", enableCORS(handler.ServeHTTP))
	mux.HandleFunc("/health", enableCORS(handleHealth))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
