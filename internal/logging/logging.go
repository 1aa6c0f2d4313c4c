// Package logging builds the zerolog logger shared by the service and the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. Zero values pick sensible defaults.
type Options struct {
	Level  string // debug|info|warn|error|off
	Format string // console|json
	// File, when set, receives JSON lines in addition to Out and is rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Out        io.Writer
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a configured logger and a close func that flushes the rotating file, if any.
func New(opts Options) (zerolog.Logger, func() error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	var primary io.Writer = out
	if strings.ToLower(opts.Format) != "json" {
		primary = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	closeFn := func() error { return nil }
	w := primary
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 50),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   true,
		}
		w = zerolog.MultiLevelWriter(primary, lj)
		closeFn = lj.Close
	}
	l := zerolog.New(w).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	return l, closeFn
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
