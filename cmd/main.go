package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"site_designer_server/config"
	"site_designer_server/internal/ai"
	"site_designer_server/internal/api"
	"site_designer_server/internal/logging"
	"site_designer_server/internal/web"
)

func main() {
	// --- Load .env file ---
	// Must run before config loading so viper sees the variables.
	// A missing .env is normal in production.
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		bootLogger := logging.New("", "info")
		bootLogger.Fatal().Err(err).Msg("Cannot load config")
	}

	logger := logging.New(cfg.AppEnv, cfg.LogLevel)
	switch {
	case envErr == nil:
		logger.Info().Msg("Loaded environment variables from .env file")
	case os.IsNotExist(envErr):
		logger.Info().Msg(".env file not found, relying on system environment variables")
	default:
		logger.Warn().Err(envErr).Msg("Error loading .env file")
	}
	if cfg.FileUsed != "" {
		logger.Info().Str("file", cfg.FileUsed).Msg("Using configuration file")
	}

	// --- Dependency Initialization ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	openaiClient := ai.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)

	imager, err := newImageGenerator(ctx, cfg, openaiClient)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.ImageProvider).Msg("Cannot create image generator")
	}

	aiGenerator := ai.NewGenerator(openaiClient, imager, ai.Options{
		TextModel:    cfg.TextModel,
		DefaultStyle: cfg.DefaultStyle,
		LenientJSON:  cfg.LenientJSON,
	})

	apiHandler := api.NewAPIHandler(aiGenerator)

	// --- HTTP Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info().Msg("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(api.RequestID(), api.RequestLogger(logger), api.Recovery())

	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = origins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Accept", "Content-Type", "X-Request-Id"}
		corsConfig.ExposeHeaders = []string{"X-Request-Id", "Content-Disposition"}
		corsConfig.MaxAge = 12 * time.Hour
		router.Use(cors.New(corsConfig))
	}

	if err := web.RegisterRoutes(router, web.NewPageData(cfg.DefaultStyle, ai.MaxImages)); err != nil {
		logger.Fatal().Err(err).Msg("Cannot parse UI templates")
	}

	var limiter *api.IPRateLimiter
	if cfg.RateLimitCapacity > 0 {
		limiter = api.NewIPRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitFillRate)
	}
	api.RegisterRoutes(router, apiHandler, api.RouteOptions{
		MaxBodyBytes:   int64(cfg.MaxBodyBytes),
		MaxExportBytes: int64(cfg.ExportMaxBodyBytes),
		Limiter:        limiter,
	})

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Up to three image calls run back to back inside one request.
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.ServerAddress).Str("image_provider", cfg.ImageProvider).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("API server listen error")
		}
		logger.Info().Msg("API server has stopped listening")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info().Str("signal", sig.String()).Msg("Shutting down server")

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("API server forced shutdown error")
	} else {
		logger.Info().Msg("API server gracefully stopped")
	}

	logger.Info().Msg("Application exiting")
}

// newImageGenerator picks the image backend named by IMAGE_PROVIDER.
func newImageGenerator(ctx context.Context, cfg config.Config, client *openai.Client) (ai.ImageGenerator, error) {
	if cfg.ImageProvider == "gemini" {
		imager, err := ai.NewGeminiImager(ctx, cfg.GeminiAPIKey, cfg.GeminiImageModel, cfg.GeminiBaseURL)
		if err != nil {
			return nil, err
		}
		return imager, nil
	}
	return ai.NewOpenAIImager(client, cfg.ImageModel, cfg.ImageSize, cfg.ImageQuality), nil
}
