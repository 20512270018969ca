// Package assetlog provides the structured logger threaded explicitly
// through the asset subsystem instead of a package-level singleton.
package assetlog

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charmbracelet/log.Logger. Callers construct one with New and
// pass it to the AssetManager constructor; LoadContext and Vfs carry no
// logger, so loaders and the VFS do not log. Nothing in this module reaches
// for a global instance.
type Logger struct {
	*log.Logger
}

// Options configures a Logger. A zero value is usable and logs at info
// level to stderr.
type Options struct {
	Writer   io.Writer
	Level    log.Level
	Prefix   string
	Caller   bool
}

// New builds a Logger from Options, filling in defaults for zero fields.
func New(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "animavault"
	}
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    opts.Caller,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	l.SetLevel(opts.Level)
	return &Logger{l}
}

// Nop returns a Logger that discards everything, for tests that don't care
// about log output.
func Nop() *Logger {
	return New(Options{Writer: io.Discard})
}

// With returns a child Logger with the given key/value pairs attached.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{l.Logger.With(keyvals...)}
}
