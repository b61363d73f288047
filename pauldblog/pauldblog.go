// Package pauldblog is PaulDB's ambient logging setup: a process-wide
// log/slog configuration read from LOG_LEVEL, plus a small injectable
// Logger interface so the executor and migration engine can run silently in
// tests and verbosely from the CLI, mirroring database/logger.go's
// Print/Printf/Println shape.
package pauldblog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Init configures the default slog logger based on the LOG_LEVEL
// environment variable ("debug", "info", "warn", "error"). Unset or
// unrecognized values default to info.
func Init() {
	level := slog.LevelInfo
	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		switch strings.ToLower(raw) {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Logger is the small print-style interface the executor and migration
// engine take instead of depending on slog directly, so a caller can supply
// StdoutLogger, NullLogger, or an adapter over its own logger.
type Logger interface {
	Print(v ...any)
	Printf(format string, v ...any)
	Println(v ...any)
}

// StdoutLogger writes every message to stdout, used by the CLI.
type StdoutLogger struct{}

func (StdoutLogger) Print(v ...any)                 { fmt.Print(v...) }
func (StdoutLogger) Printf(format string, v ...any) { fmt.Printf(format, v...) }
func (StdoutLogger) Println(v ...any)               { fmt.Println(v...) }

// NullLogger discards every message, used by tests.
type NullLogger struct{}

func (NullLogger) Print(v ...any)                 {}
func (NullLogger) Printf(format string, v ...any) {}
func (NullLogger) Println(v ...any)               {}

// SlogLogger adapts slog.Logger to the Logger interface, used when the
// caller wants structured logging instead of StdoutLogger's plain text.
type SlogLogger struct {
	L *slog.Logger
}

func (s SlogLogger) Print(v ...any)                 { s.L.Info(fmt.Sprint(v...)) }
func (s SlogLogger) Printf(format string, v ...any) { s.L.Info(fmt.Sprintf(format, v...)) }
func (s SlogLogger) Println(v ...any)               { s.L.Info(fmt.Sprint(v...)) }
