// Package logger provides the process-wide structured logger built on
// log/slog.
//
// Handlers log through WithCtx so every line carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", id)
//	// → time=... level=INFO msg="order placed" request_id=1c9e... order_id=65f1...
package logger

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/hasan75/tourism-htt-server/config"
)

var (
	mu      sync.Mutex
	console slog.Handler

	// L is the base logger. Prefer WithCtx inside request handlers.
	L *slog.Logger
)

func init() {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if config.IsProduction() {
		opts.Level = slog.LevelInfo
		console = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		console = slog.NewTextHandler(os.Stdout, opts)
	}

	L = slog.New(console)
	slog.SetDefault(L)
}

// Attach fans log records out to extra handlers alongside the console one.
// Calling it again replaces the previous extras.
func Attach(extra ...slog.Handler) {
	mu.Lock()
	defer mu.Unlock()

	hs := append([]slog.Handler{console}, extra...)
	L = slog.New(NewMultiHandler(hs...))
	slog.SetDefault(L)
}

// Detach restores the console-only logger.
func Detach() {
	mu.Lock()
	defer mu.Unlock()

	L = slog.New(console)
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the per-request logger stored by the logging middleware, or
// the base logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx for WithCtx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
