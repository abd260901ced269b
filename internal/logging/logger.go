package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type requestIDKey struct{}

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func Init(isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if isDevelopment {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Caller().
			Logger()
		return
	}

	logger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()
}

// SetOutput redirects all logging, mostly for tests.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

func Logger() *zerolog.Logger {
	return &logger
}

// ContextWithRequestID stores the request id so that log lines emitted while
// serving the request carry it.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func WithContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	requestID, ok := ctx.Value(requestIDKey{}).(string)
	if !ok || requestID == "" {
		return logger
	}
	return logger.With().Str("request_id", requestID).Logger()
}

func Info(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Info()
}

func Error(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Error()
}

func Debug(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Debug()
}

func Warn(ctx context.Context) *zerolog.Event {
	l := WithContext(ctx)
	return l.Warn()
}
