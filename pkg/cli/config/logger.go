package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level string
	JSON  bool
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("TCIA_DL_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("TCIA_DL_LOG_JSON"),
		},
	}
}

// Configure configures and returns the logger. Console output goes through
// the clog handler unless JSON output is requested.
func (c *Logger) Configure() (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	if c.JSON {
		handler = NewJSONHandler(os.Stdout, level)
	} else {
		handler = clog.New(
			clog.WithWriter(os.Stdout),
			clog.WithLevel(level),
		)
	}

	return slog.New(handler), nil
}

func (c *Logger) level() (slog.Level, error) {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, goerr.New("unknown log level", goerr.V("level", c.Level))
	}
}

// NewJSONHandler creates a JSON slog handler that redacts the given secret
// values. The download command uses it for the per-run log file inside the
// destination directory, with the API key as secret.
func NewJSONHandler(w io.Writer, level slog.Level, secrets ...string) slog.Handler {
	options := []masq.Option{
		masq.WithFieldName("APIKey"),
	}
	for _, secret := range secrets {
		if secret != "" {
			options = append(options, masq.WithContain(secret))
		}
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: masq.New(options...),
	})
}

// multiHandler fans one log record out to several handlers
type multiHandler struct {
	handlers []slog.Handler
}

// Tee combines handlers into one. Records are delivered to every handler
// that is enabled for their level.
func Tee(handlers ...slog.Handler) slog.Handler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = err
		}
	}
	return errs
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
