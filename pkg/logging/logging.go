package logging

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Options controls logger construction
type Options struct {
	Level    string // panic, fatal, error, warn, info, debug, trace
	Format   string // "text" or "json"
	Colorize bool
}

// New builds a logger for diagnostics. Operator-facing progress does not
// go through it.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	logger := log.New()
	logger.SetOutput(w)

	level := opts.Level
	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{
			DisableColors:          !opts.Colorize,
			ForceColors:            opts.Colorize,
			DisableTimestamp:       true,
			DisableLevelTruncation: true,
		})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}

	return logger, nil
}
