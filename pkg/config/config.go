package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
)

// Output formats understood by the report writers
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds application configuration
type Config struct {
	LogLevel       logrus.Level `json:"log_level" default:"0"` // logrus.PanicLevel, silent unless asked
	OutputFormat   string       `json:"output_format" default:"text"`
	StrictFixtures bool         `json:"strict_fixtures" default:"true"`
	Colors         bool         `json:"colors" default:"true"`
}

// DefaultConfig returns default configuration values
func DefaultConfig() *Config {
	cfg := &Config{}
	defaults.SetDefaults(cfg)
	return cfg
}

// ParseLogLevel accepts debug, info, warn or error
func ParseLogLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.PanicLevel, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}

// Validate checks the output format
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format: %q (must be %s or %s)", c.OutputFormat, FormatText, FormatJSON)
	}
}

// NewLogger creates a configured logger instance
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)

	// Use structured logging format
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	return logger
}
