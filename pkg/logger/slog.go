package logger

import (
	"context"
	"log/slog"
	"os"
)

type SlogLogger struct {
	logger *slog.Logger
}

type SlogEnvironment string

const (
	EnvLocal SlogEnvironment = "local"
	EnvDev   SlogEnvironment = "dev"
)

func NewSlogLogger(env SlogEnvironment) *SlogLogger {
	var slogger *slog.Logger

	switch env {
	case EnvDev:
		slogger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		slogger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return &SlogLogger{
		logger: slogger,
	}
}

func toArgs(attrs []Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, slog.Any(attr.Key, attr.Value))
	}
	return args
}

func (s *SlogLogger) Debug(msg string, attrs ...Attr) {
	s.logger.Debug(msg, toArgs(attrs)...)
}

func (s *SlogLogger) Info(msg string, attrs ...Attr) {
	s.logger.Info(msg, toArgs(attrs)...)
}

func (s *SlogLogger) Warn(msg string, attrs ...Attr) {
	s.logger.Warn(msg, toArgs(attrs)...)
}

func (s *SlogLogger) Error(msg string, attrs ...Attr) {
	s.logger.Error(msg, toArgs(attrs)...)
}

func (s *SlogLogger) DebugContext(ctx context.Context, msg string, attrs ...Attr) {
	s.logger.DebugContext(ctx, msg, toArgs(attrs)...)
}

func (s *SlogLogger) InfoContext(ctx context.Context, msg string, attrs ...Attr) {
	s.logger.InfoContext(ctx, msg, toArgs(attrs)...)
}

func (s *SlogLogger) WarnContext(ctx context.Context, msg string, attrs ...Attr) {
	s.logger.WarnContext(ctx, msg, toArgs(attrs)...)
}

func (s *SlogLogger) ErrorContext(ctx context.Context, msg string, attrs ...Attr) {
	s.logger.ErrorContext(ctx, msg, toArgs(attrs)...)
}
