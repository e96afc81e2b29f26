package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case Debug:
		return slog.LevelDebug
	case Warn:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger es la interfaz que usan servicios y adapters.
// Los campos van como map para no acoplar a los paquetes al handler concreto.
type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output opcional (default os.Stdout). Útil en tests.
	Output io.Writer
}

// slogLogger adapta log/slog a nuestra interfaz.
type slogLogger struct {
	l *slog.Logger
}

func New(opts Options) Logger {
	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}

	hopts := &slog.HandlerOptions{Level: opts.Level.slogLevel()}

	var h slog.Handler
	switch opts.Format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, hopts)
	default:
		h = slog.NewTextHandler(w, hopts)
	}

	l := slog.New(h)
	if app := strings.TrimSpace(opts.App); app != "" {
		l = l.With(slog.String("app", app))
	}
	return &slogLogger{l: l}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=pawsense (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Nop descarta todo. Para tests y defaults de constructores.
func Nop() Logger {
	return &slogLogger{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (s *slogLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return s
	}
	return &slogLogger{l: s.l.With(attrs(fields)...)}
}

func (s *slogLogger) Debug(msg string, fields map[string]any) {
	s.l.Debug(msg, attrs(fields)...)
}
func (s *slogLogger) Info(msg string, fields map[string]any) { s.l.Info(msg, attrs(fields)...) }
func (s *slogLogger) Warn(msg string, fields map[string]any) { s.l.Warn(msg, attrs(fields)...) }
func (s *slogLogger) Error(msg string, fields map[string]any) {
	s.l.Error(msg, attrs(fields)...)
}

// attrs ordena las keys para salida estable (útil en tests/logs).
func attrs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		out = append(out, slog.Any(k, v))
	}
	return out
}

type ctxKey struct{}

// WithContext guarda un logger (p.ej. con request_id / user_id) en el context.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext devuelve el logger del context o fallback si no hay.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
			return l
		}
	}
	if fallback == nil {
		return Nop()
	}
	return fallback
}
