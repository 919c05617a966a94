package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger define a interface para logging estruturado.
// Handler, Service e Repositório dependem apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// SlogLogger é a implementação concreta que escreve JSON via log/slog.
type SlogLogger struct {
	log  *slog.Logger
	exit func(int)
}

// NewLogger cria o Logger de produção, escrevendo em stdout.
func NewLogger(level string) Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter cria um Logger escrevendo no writer informado (útil em testes).
func NewWithWriter(level string, w io.Writer) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	})
	return &SlogLogger{log: slog.New(handler), exit: os.Exit}
}

// parseLevel converte o nível textual; valores desconhecidos caem em info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func toAttrs(fields map[string]interface{}) []any {
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]any, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return []any{slog.Group("fields", attrs...)}
}

func errAttrs(err error) []any {
	if err == nil {
		return nil
	}
	return []any{slog.String("error", err.Error())}
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toAttrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toAttrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toAttrs(fields)...)
}

func (l *SlogLogger) Error(msg string, err error) {
	l.log.Error(msg, errAttrs(err)...)
}

// Fatal registra o erro e encerra o processo.
func (l *SlogLogger) Fatal(msg string, err error) {
	l.log.Log(context.Background(), slog.LevelError, msg, append(errAttrs(err), slog.Bool("fatal", true))...)
	l.exit(1)
}

// Nop devolve um Logger que descarta tudo.
func Nop() Logger {
	return NewWithWriter("error", io.Discard)
}
