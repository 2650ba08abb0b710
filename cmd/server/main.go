package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yourusername/download-it/api"
	"github.com/yourusername/download-it/api/handlers"
	"github.com/yourusername/download-it/internal/app"
	"github.com/yourusername/download-it/internal/infrastructure"
	"github.com/yourusername/download-it/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	rt, err := app.NewRuntime(config, appLogger, prometheus.DefaultRegisterer)
	if err != nil {
		appLogger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer rt.Close()

	log := rt.Logs.App()
	log.Info("Starting download-it server",
		zap.String("version", handlers.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("logs_dir", config.Download.LogsDir))

	reporter := infrastructure.NewOutputReporter(rt.Logs.Download(), nil, nil, rt.Notifier)
	router := api.SetupRouter(rt.Manager, reporter, rt.Logs, nil, config.Server.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...",
		zap.Int64("in_flight", rt.Manager.InFlight().Count()))

	// Running downloads cannot be aborted, give them time to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
