package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "weather-gateway/internal/api/http"
	"weather-gateway/internal/config"
	"weather-gateway/internal/logger"
	"weather-gateway/internal/probe"
	"weather-gateway/internal/weather"
	"weather-gateway/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load config: %v", err))
	}

	// Shared HTTP client for outbound provider calls. Per-operation context
	// deadlines govern individual calls; the client timeout is a backstop.
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	provider := providers.NewWeatherAPI(httpClient, cfg.WeatherAPIKey, cfg.WeatherAPIBaseURL)
	service := weather.NewService(provider, cfg.HTTPTimeout, cfg.ForecastTimeout)

	// Upstream reachability probe feeding /status. Without a credential every
	// probe would fail with a config error, so it only runs when one is set.
	prober := probe.New(provider, cfg.ProbeInterval)
	if cfg.WeatherAPIKey != "" {
		if err := prober.Start(); err != nil {
			logger.Fatal(fmt.Errorf("failed to start upstream probe: %v", err))
		}
		defer prober.Stop()
	} else {
		logger.Info("WEATHER_API_KEY is not set; upstream calls will fail until it is configured")
	}

	app := fiber.New(fiber.Config{
		AppName:               httpapi.ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins, ","),
		AllowMethods:     strings.Join(cfg.CORS.AllowedMethods, ","),
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))

	httpapi.RegisterRoutes(app, service, cfg, prober)

	go func() {
		logger.Info(fmt.Sprintf("starting %s on port %s", httpapi.ServiceName, cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error(fmt.Errorf("fiber server stopped: %v", err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error(fmt.Errorf("error during shutdown: %v", err))
	}
}
