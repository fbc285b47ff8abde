// Package logger constructs the run logger. Log output goes to stderr so
// stdout carries nothing but the report.
package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/community-of-python/redos-linter/config"
)

// New builds a logger from config, falling back to the
// REDOS_LINTER_LOG_LEVEL environment variable and then to warn.
func New(cfg *config.Config) hclog.Logger {
	levelStr := ""
	if cfg != nil {
		levelStr = cfg.Logger.Level
	}
	if levelStr == "" {
		levelStr = os.Getenv("REDOS_LINTER_LOG_LEVEL")
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        "redos-linter",
		DisableTime: true,
		Output:      os.Stderr,
		Level:       getLogLevel(strings.ToUpper(levelStr)),
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Warn
	}
}
