package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds the leveled logger shared by a binary. LOG_LEVEL selects
// the level (debug, info, warn, error); anything else means info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}
