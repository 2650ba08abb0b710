package domain

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the config, state and log directories
const AppName = "download-it"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// Browser origins besides the server's own that may call the API
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	BaseDir   string `mapstructure:"base_dir"`   // used when no directory hint is given
	LogsDir   string `mapstructure:"logs_dir"`   // output log location
	ChunkSize int    `mapstructure:"chunk_size"` // read buffer for streamed bodies
	Progress  bool   `mapstructure:"progress"`   // report percentages while streaming
	Confirm   bool   `mapstructure:"confirm"`    // ask before creating dirs / overwriting
	UserAgent string `mapstructure:"user_agent"`
}

// StorageConfig contains history database configuration
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	stateDir := filepath.Join(xdg.StateHome, AppName)

	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8089,
		},
		Download: DownloadConfig{
			BaseDir:   ".",
			LogsDir:   filepath.Join(stateDir, "logs"),
			ChunkSize: 32 * 1024,
			Progress:  true,
			Confirm:   true,
			UserAgent: AppName + "/1.0",
		},
		Storage: StorageConfig{
			DatabasePath: filepath.Join(stateDir, "history.db"),
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}
