package log

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/skyzh/tikv/errors"
)

// Config contains the configuration for the global logger.
type Config struct {
	// Format to write log lines in, either "text" or "json"
	Format string
	// Level is the lowest log level that will be emitted
	Level string
	// File to direct logs to. If left blank, or "-", logs go to stdout
	File string
}

// Configure the global logger
func (cfg *Config) Configure() error {
	if cfg.File != "" && cfg.File != "-" {
		f, err := os.Create(cfg.File)
		if err != nil {
			return errors.WithStack(err)
		}
		log.SetOutput(f)
	}
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return errors.WithStack(err)
		}
		log.SetLevel(level)
	}
	switch cfg.Format {
	case "text":
		// default, do nothing
		break
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return errors.Errorf("log format must be either text or json")
	}
	return nil
}
