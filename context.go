package songdl

import (
	"context"
	"io"

	"go.uber.org/zap"
)

type contextKey int

const (
	loggerKey contextKey = iota
	progressKey
)

// WithLogger returns a context that carries logger, retrieved with Logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger gets the logger from the context, falling back to the global zap logger.
func Logger(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.L()
}

// A ProgressFunc receives the number of bytes written so far and the number expected (0 if unknown).
type ProgressFunc = func(downloaded int64, expected int64)

// WithProgress returns a context that carries a download progress callback.
func WithProgress(ctx context.Context, f ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey, f)
}

// Progress gets the progress callback from the context, or nil.
func Progress(ctx context.Context) ProgressFunc {
	f, _ := ctx.Value(progressKey).(ProgressFunc)
	return f
}

// A context-aware io.Reader wrapper.
type readerContext struct {
	ctx context.Context
	r   io.Reader
}

func (r *readerContext) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
