package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yourusername/download-it/internal/domain"
)

// EnvPrefix prefixes environment overrides, e.g. DOWNLOADIT_SERVER_PORT
const EnvPrefix = "DOWNLOADIT"

// LoadConfig loads configuration from file, .env files and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	// Start with default config
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, config)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, domain.AppName))
		for _, dir := range xdg.ConfigDirs {
			v.AddConfigPath(filepath.Join(dir, domain.AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// DefaultConfigPath is where SaveConfig writes when no path is given
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, domain.AppName, "config.yaml")
}

// loadEnvFiles loads .env then .env.local from the working directory, both optional
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}
	if _, err := os.Stat(".env.local"); err == nil {
		if err := godotenv.Overload(".env.local"); err != nil {
			return fmt.Errorf("failed to load .env.local: %w", err)
		}
	}
	return nil
}

// configKeys flattens config into its viper keys
func configKeys(config *domain.Config) map[string]interface{} {
	return map[string]interface{}{
		"server.host":            config.Server.Host,
		"server.port":            config.Server.Port,
		"server.allowed_origins": config.Server.AllowedOrigins,
		"download.base_dir":      config.Download.BaseDir,
		"download.logs_dir":      config.Download.LogsDir,
		"download.chunk_size":    config.Download.ChunkSize,
		"download.progress":      config.Download.Progress,
		"download.confirm":       config.Download.Confirm,
		"download.user_agent":    config.Download.UserAgent,
		"storage.database_path":  config.Storage.DatabasePath,
		"notification.enabled":   config.Notification.Enabled,
		"notification.method":    config.Notification.Method,
		"logging.level":          config.Logging.Level,
		"logging.format":         config.Logging.Format,
		"logging.output_path":    config.Logging.OutputPath,
	}
}

// setDefaults registers every key so environment overrides apply without a config file
func setDefaults(v *viper.Viper, config *domain.Config) {
	for key, value := range configKeys(config) {
		v.SetDefault(key, value)
	}
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.BaseDir = expandPath(config.Download.BaseDir)
	config.Download.LogsDir = expandPath(config.Download.LogsDir)
	config.Storage.DatabasePath = expandPath(config.Storage.DatabasePath)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	path = os.ExpandEnv(path)

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Download.BaseDir == "" {
		return fmt.Errorf("download base directory not configured")
	}

	if config.Download.ChunkSize < 0 {
		return fmt.Errorf("chunk size cannot be negative")
	}

	if config.Storage.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	switch config.Notification.Method {
	case "", "osascript", "notify-send":
	default:
		return fmt.Errorf("unsupported notification method: %s", config.Notification.Method)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	for key, value := range configKeys(config) {
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
