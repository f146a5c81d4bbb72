package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFallsBackToProcessLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))

	From(context.Background()).Info("hello")
	From(nil).Info("nil ctx")

	require.Equal(t, 2, logs.Len())
}

func TestFromUsesScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.NewNop())

	ctx := ToContext(context.Background(), zap.New(core).With(RequestID("req-1")))
	From(ctx).Info("scoped")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		require.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNamedScopesProcessLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))

	Named("migrate").Info("applied migration")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "migrate", logs.All()[0].LoggerName)
}
