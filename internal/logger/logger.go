package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

var globalLogger *slog.Logger

// LogLevel represents different log levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string
	Format     string // "json" or "text"
}

// Init initializes the structured logger with defaults
func Init() error {
	return InitWithConfig(Config{
		Level:      LevelInfo,
		OutputPath: "logs/app.log",
		Format:     "json",
	})
}

// InitWithConfig initializes logger with custom config
func InitWithConfig(config Config) error {
	if config.OutputPath != "" && config.OutputPath != "stdout" {
		dir := filepath.Dir(config.OutputPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	var output *os.File
	var err error
	if config.OutputPath == "" || config.OutputPath == "stdout" {
		output = os.Stdout
	} else {
		output, err = os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
	}

	var level slog.Level
	switch config.Level {
	case LevelDebug:
		level = slog.LevelDebug
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return nil
}

// WithFields returns a logger with additional fields
func WithFields(fields ...any) *slog.Logger {
	return GetLogger().With(fields...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Infof logs an info message with formatting
func Infof(format string, args ...any) {
	GetLogger().Info(fmt.Sprintf(format, args...))
}

// Warningf logs a warning message with formatting
func Warningf(format string, args ...any) {
	GetLogger().Warn(fmt.Sprintf(format, args...))
}

// Errorf logs an error message with formatting
func Errorf(format string, args ...any) {
	GetLogger().Error(fmt.Sprintf(format, args...))
}

// GetLogger returns the global logger, falling back to the slog default
// before Init runs.
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}
