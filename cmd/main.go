package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	authconfig "bistro-boss/internal/auth/config"
	"bistro-boss/internal/bistro/config"
	"bistro-boss/internal/di"
	apperrors "bistro-boss/internal/shared/errors"
	"bistro-boss/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	appLogger := logger.NewLoggerWithOptions(logger.OptionsFromEnv())
	if err := run(appLogger); err != nil {
		appLogger.Errorf("Application stopped with error: %v", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the container is always closed.
func run(appLogger logger.Logger) error {
	bistroCfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		return err
	}
	appLogger.Info("Application configuration loaded successfully")

	container := di.NewContainer(appLogger)
	if err := container.Initialize(context.Background(), bistroCfg, authCfg); err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:                 "Bistro Boss API",
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             60 * time.Second,
		BodyLimit:               int(bistroCfg.MaxImageBytes) + 1<<20,
		ProxyHeader:             bistroCfg.ProxyHeader,
		EnableTrustedProxyCheck: bistroCfg.ProxyHeader != "",
		TrustedProxies:          bistroCfg.TrustedProxies,
		ErrorHandler:            apperrors.NewFiberErrorHandler(appLogger),
	})

	authModule := container.GetAuthModule()
	mw := authModule.GetMiddleware()

	app.Use(recover.New())
	app.Use(mw.RequestID())
	app.Use(mw.RequestContext())
	app.Use(logger.FiberMiddleware(appLogger))
	app.Use(mw.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(bistroCfg.CORSOrigins, ","),
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	authModule.RegisterRoutes(app)
	container.GetBistroModule().RegisterRoutes(app, mw)

	serverAddr := bistroCfg.Addr()
	appLogger.Infof("All modules initialized. Starting HTTP server on %s", serverAddr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		return err
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}
	return nil
}
