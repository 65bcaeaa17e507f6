package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/srg/shadows/pkg/config"
)

// configureLogger creates a logger honoring --log-level. Without the flag the
// configured default applies.
func configureLogger(cmd *cobra.Command, cfg *config.Config) (*logrus.Logger, error) {
	// Default config level is panic (essentially silent for normal operations)
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	if logLevelStr != "" {
		level, err := config.ParseLogLevel(logLevelStr)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	logger := cfg.NewLogger()
	logger.SetOutput(cmd.ErrOrStderr())
	return logger, nil
}
