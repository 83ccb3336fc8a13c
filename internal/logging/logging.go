package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/ioequiz/internal/config"
)

// New builds the application logger. The TUI owns the terminal, so logs go
// to cfg.LogFile when set and are discarded otherwise. The returned closer
// releases the log file.
func New(cfg config.Config) (*logrus.Logger, io.Closer, error) {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	return NewWithWriter(out, lvl), closer, nil
}

// NewWithWriter builds a logger writing text records to w.
func NewWithWriter(w io.Writer, lvl logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out:       w,
		Formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	return NewWithWriter(io.Discard, logrus.PanicLevel)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
