package logger

import (
	"go.uber.org/zap"
)

// LoggerAdapter pairs the application logger with the categorized file loggers.
// Without a multi-logger every category falls back to the application logger.
type LoggerAdapter struct {
	multiLogger *MultiLogger
	appLogger   *zap.Logger
}

// NewLoggerAdapter creates a new logger adapter
func NewLoggerAdapter(appLogger *zap.Logger, multiLogger *MultiLogger) *LoggerAdapter {
	if appLogger == nil {
		appLogger = zap.NewNop()
	}
	return &LoggerAdapter{
		multiLogger: multiLogger,
		appLogger:   appLogger,
	}
}

// App returns the application logger
func (la *LoggerAdapter) App() *zap.Logger {
	return la.appLogger
}

// Download returns the download status logger
func (la *LoggerAdapter) Download() *zap.Logger {
	if la.multiLogger != nil {
		return la.multiLogger.Download()
	}
	return la.appLogger
}

// LogError logs an error to the application log and the error category
func (la *LoggerAdapter) LogError(msg string, fields ...zap.Field) {
	la.appLogger.Error(msg, fields...)
	if la.multiLogger != nil {
		la.multiLogger.LogAppError(msg, fields...)
	}
}

// LogsDir returns the directory of the category logs, empty without a multi-logger
func (la *LoggerAdapter) LogsDir() string {
	if la.multiLogger != nil {
		return la.multiLogger.GetLogsDir()
	}
	return ""
}

// Sync flushes all loggers
func (la *LoggerAdapter) Sync() error {
	if la.multiLogger != nil {
		if err := la.multiLogger.Sync(); err != nil {
			return err
		}
	}
	return la.appLogger.Sync()
}
