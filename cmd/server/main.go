package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/api"
	"github.com/example/portfolio-admin/internal/app"
	"github.com/example/portfolio-admin/internal/config"
	"github.com/example/portfolio-admin/internal/middleware"
)

func newLogger(ginMode string) (*zap.Logger, error) {
	if strings.EqualFold(ginMode, "release") {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	zapLogger, err := newLogger(appConfig.GinMode)
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded successfully.",
		zap.String("dbBackend", appConfig.DBBackend),
		zap.String("authMode", appConfig.AuthMode),
		zap.String("prefsBackend", appConfig.PrefsBackend),
		zap.String("cacheBackend", appConfig.CacheBackend),
	)

	// --- 3. Initialize backends and services ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	application, err := app.New(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize application", zap.Error(err))
	}
	zapLogger.Info("Core services initialized successfully.")

	// Repair the About collection once at startup.
	if flipped, err := application.About.Normalize(initCtx); err != nil {
		zapLogger.Warn("Startup About normalization failed", zap.Error(err))
	} else if len(flipped) > 0 {
		zapLogger.Info("Deactivated extra active About records", zap.Strings("keys", flipped))
	}

	// --- 4. Setup Gin HTTP Engine ---
	if strings.EqualFold(appConfig.GinMode, "release") {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 5. Apply Global Middleware ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if origins := appConfig.AllowedOrigins(); len(origins) > 0 {
		router.Use(middleware.CORSMiddleware(origins))
		zapLogger.Info("CORS Middleware enabled", zap.Strings("origins", origins))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. The dashboard must be served from the same origin.")
	}

	// --- 6. Setup API Routes ---
	api.SetupRoutes(router, zapLogger, middleware.NewAuthMiddleware(application.Verifier, zapLogger), api.Services{
		About:     application.About,
		Education: application.Education,
		Skills:    application.Skills,
		Projects:  application.Projects,
		Contact:   application.Contact,
		Overview:  application.Overview,
		Audit:     application.Audit,
		Theme:     application.Theme,
		Hub:       application.Hub,
	})

	// --- 7. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Event streams only end when their subscriptions are closed.
	httpServer.RegisterOnShutdown(func() {
		if err := application.Hub.Close(); err != nil {
			zapLogger.Warn("Failed to close live hub", zap.Error(err))
		}
		application.Theme.CloseSubscriptions()
	})

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 8. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}
	if err := application.Close(); err != nil {
		zapLogger.Warn("Error while releasing resources", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
