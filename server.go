package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ThakurMayank5/skribbl-rooms/internal/api"
	"github.com/ThakurMayank5/skribbl-rooms/internal/config"
	"github.com/ThakurMayank5/skribbl-rooms/internal/game"
	"github.com/ThakurMayank5/skribbl-rooms/internal/words"
	"github.com/ThakurMayank5/skribbl-rooms/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func setupRouter(cfg *config.Config, rooms *game.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))

	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAnyOrigin(cfg.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	router.Use(api.Session())

	api.New(rooms).Register(router)

	// WebSocket route
	router.GET("/ws/draw", ws.NewServer(rooms, cfg.AllowedOrigins, cfg.SendQueueSize).Handle)

	return router
}

// Browsers reject credentialed responses for a wildcard origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func loadWords(path string) (words.Bank, error) {
	if path == "" {
		return words.Default(), nil
	}
	return words.Load(path)
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig reads the configuration with bootstrap installed as the global
// logger, so problems are reported before the configured logger exists.
func loadConfig(bootstrap *zap.Logger) (*config.Config, error) {
	restore := zap.ReplaceGlobals(bootstrap)
	defer restore()
	return config.LoadConfig()
}

func main() {
	bootstrap, err := newLogger(true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(bootstrap)
	if err != nil {
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogDevelopment)
	if err != nil {
		bootstrap.Fatal("Failed to build logger", zap.Error(err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	logger.Debug("Configuration loaded successfully", zap.Any("config", cfg))

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	bank, err := loadWords(cfg.WordsFile)
	if err != nil {
		logger.Fatal("Failed to load words", zap.Error(err))
	}

	rooms := game.NewRegistry(cfg.GameSettings(), bank, cfg.MaxRoomSize)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HttpServerPort),
		Handler: setupRouter(cfg, rooms),
	}

	go func() {
		logger.Info("server.start", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("server.shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_dispose", zap.Error(err))
	}
	rooms.CloseAll()
}
