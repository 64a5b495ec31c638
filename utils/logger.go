package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// InitLogger builds the process-wide sugared logger. APP_ENV=production
// switches to JSON output.
func InitLogger() error {
	var cfg zap.Config
	switch strings.ToLower(os.Getenv("APP_ENV")) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	log = zl.Sugar()
	return nil
}

// Log returns the shared logger, falling back to a no-op logger so tests and
// helpers never need InitLogger first.
func Log() *zap.SugaredLogger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return log
}
