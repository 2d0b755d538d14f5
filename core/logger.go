package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger from config. Debug output is enabled
// by debugLogs.
func NewLogger(w io.Writer, config Config) (*log.Logger, error) {
	formatter, err := ParseLogFormatter(config.LogFormat)
	if err != nil {
		return nil, err
	}

	level := log.InfoLevel
	if config.DebugLogs {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          "todos",
	}), nil
}

func ParseLogFormatter(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unknown log format %q", name)
	}
}
