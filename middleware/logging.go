package middleware

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"github.com/shravanasati/hellowasm/router"
	"github.com/shravanasati/hellowasm/server"
	"go.uber.org/zap"
)

// statusOf reports the status the client will see; a handler error becomes 500 at the host boundary.
func statusOf(resp response.Response, err error) int {
	if err != nil || resp == nil {
		return int(response.StatusInternalServerError)
	}
	return int(resp.GetStatusCode())
}

// Logging logs one structured line per request.
func Logging(logger *zap.Logger) router.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) (response.Response, error) {
			now := time.Now()
			resp, err := next(r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.Path),
				zap.Int("status", statusOf(resp, err)),
				zap.Duration("duration", time.Since(now)),
			}
			if id := RequestIDFrom(r.Context()); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}
			if err != nil {
				logger.Error("request", append(fields, zap.Error(err))...)
			} else {
				logger.Info("request", fields...)
			}
			return resp, err
		}
	}
}

// LoggingColored logs a colored access line, for terminals.
func LoggingColored(logger *zap.Logger) router.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	methodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true).Background(lipgloss.Color("12")).Width(8).Align(lipgloss.Center)

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) (response.Response, error) {
			now := time.Now()
			resp, err := next(r)

			statusCode := statusOf(resp, err)
			styledStatus := getStatusCodeStyle(statusCode).Render(fmt.Sprintf("%d", statusCode))
			styledMethod := methodStyle.Render(r.Method)

			line := fmt.Sprintf("%s %s %s in %s", styledMethod, r.Target, styledStatus, time.Since(now))
			if err != nil {
				logger.Error(line, zap.Error(err))
			} else {
				logger.Info(line)
			}
			return resp, err
		}
	}
}

// getStatusCodeStyle returns a lipgloss style for HTTP status codes
func getStatusCodeStyle(statusCode int) lipgloss.Style {
	switch {
	case statusCode >= 200 && statusCode < 300:
		// green
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case statusCode >= 300 && statusCode < 400:
		// yellow
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case statusCode >= 400 && statusCode < 500:
		// orange
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case statusCode >= 500:
		// bright red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}
