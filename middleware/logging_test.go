package middleware

import (
	"testing"

	"github.com/shravanasati/hellowasm/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := Logging(zap.New(core))(okHandler)

	resp, err := handler(newReq(t, "GET", "/hello?x=1"))
	require.NoError(t, err)
	assert.Equal(t, response.StatusOK, resp.GetStatusCode())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/hello", fields["path"])
	assert.Equal(t, int64(200), fields["status"])
	assert.Contains(t, fields, "duration")
	assert.NotContains(t, fields, "request_id")
}

func TestLoggingError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := Logging(zap.New(core))(failingHandler)

	resp, err := handler(newReq(t, "POST", "/users"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, errUpstream)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(500), fields["status"])
	assert.Equal(t, errUpstream.Error(), fields["error"])
}

func TestLoggingWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := RequestID()(Logging(zap.New(core))(okHandler))

	resp, err := handler(newReq(t, "GET", "/hello"))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, resp.GetHeaders().Get(RequestIDHeader), entries[0].ContextMap()["request_id"])
}

func TestLoggingColored(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := LoggingColored(zap.New(core))(okHandler)

	_, err := handler(newReq(t, "GET", "/hello"))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "/hello")
	assert.Contains(t, entries[0].Message, "200")

	_, err = LoggingColored(zap.New(core))(failingHandler)(newReq(t, "POST", "/users"))
	assert.ErrorIs(t, err, errUpstream)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestLoggingNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		_, _ = Logging(nil)(okHandler)(newReq(t, "GET", "/"))
		_, _ = LoggingColored(nil)(okHandler)(newReq(t, "GET", "/"))
	})
}

func TestGetStatusCodeStyle(t *testing.T) {
	for _, code := range []int{0, 200, 302, 404, 500} {
		assert.NotEmpty(t, getStatusCodeStyle(code).Render("x"))
	}
}
