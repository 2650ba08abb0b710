package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/download-it/internal/app"
	"github.com/yourusername/download-it/internal/domain"
	"github.com/yourusername/download-it/pkg/logger"
)

var (
	configPath  string
	plain       bool
	assumeYes   bool
	serverURL   string
	noAutoStart bool
	rootCmd     = &cobra.Command{
		Use:           "download-it",
		Short:         "Download It - fetch a URL into a local file",
		Long:          `Prompts for a URL and a destination path, downloads the resource over HTTP(S) and reports progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// errDownloadFailed sets a non-zero exit status after the failure was already reported
var errDownloadFailed = errors.New("download failed")

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Plain line prompts and unstyled output")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Create missing directories and overwrite files without asking")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server URL for remote commands (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(initConfigCmd)
}

// loadConfig loads the config and fills in the server URL
func loadConfig() (*domain.Config, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if serverURL == "" {
		serverURL = fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
	}
	return config, nil
}

// openRuntime opens the logs and history for commands that run in-process
func openRuntime() (*app.Runtime, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// The terminal belongs to the prompts; only file logging follows the config level
	appLogger := logger.NewDefault()
	switch config.Logging.OutputPath {
	case "", "stdout", "stderr":
	default:
		if l, err := logger.New(logger.Config{
			Level:      config.Logging.Level,
			Format:     config.Logging.Format,
			OutputPath: config.Logging.OutputPath,
		}); err == nil {
			appLogger = l
		}
	}

	rt, err := app.NewRuntime(config, appLogger, nil)
	if err != nil {
		return nil, err
	}
	appLogger.Debug("Runtime opened", zap.String("logs_dir", config.Download.LogsDir))
	return rt, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDownloadFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
