package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/gstats/internal/handlers"
	"github.com/alimgiray/gstats/internal/services"
	"github.com/alimgiray/gstats/pkg/config"
	"github.com/alimgiray/gstats/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	log := logger.Init(cfg.Log)
	gin.SetMode(cfg.Server.Mode)

	// Initialize dependencies
	githubService, err := services.NewGitHubService(cfg.GitHub, log)
	if err != nil {
		logger.Fatalf("Failed to create GitHub service: %v", err)
	}
	profileService := services.NewProfileService(githubService, log)
	repoStatsService := services.NewRepoStatsService(githubService, log)
	exportService := services.NewExportService()

	// Initialize router
	router, err := handlers.NewRouter(profileService, repoStatsService, exportService, log)
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Infof("Server stopped")
}
