package middleware

import (
	"time"

	"github.com/shravanasati/hellowasm/headers"
	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"github.com/shravanasati/hellowasm/router"
	"github.com/shravanasati/hellowasm/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/shravanasati/hellowasm/middleware"

// headerCarrier lets the text map propagator read trace context from request headers.
type headerCarrier struct {
	h *headers.Headers
}

var _ propagation.TextMapCarrier = headerCarrier{}

func (c headerCarrier) Get(key string) string { return c.h.Get(key) }

func (c headerCarrier) Set(key, value string) { c.h.Set(key, value) }

func (c headerCarrier) Keys() []string { return c.h.Keys() }

// Tracing starts a server span per request and records request count and
// duration. Nil providers fall back to the global ones.
func Tracing(tp trace.TracerProvider, mp metric.MeterProvider) (router.Middleware, error) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	tracer := tp.Tracer(instrumentationName)
	meter := mp.Meter(instrumentationName)

	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of requests dispatched"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Time spent dispatching a request"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	propagator := otel.GetTextMapPropagator()

	return func(next server.Handler) server.Handler {
		return func(r *request.Request) (response.Response, error) {
			ctx := propagator.Extract(r.Context(), headerCarrier{&r.Headers})
			ctx, span := tracer.Start(ctx, r.Method+" "+r.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.Path),
				))
			defer span.End()

			start := time.Now()
			resp, err := next(r.WithContext(ctx))
			status := statusOf(resp, err)

			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			switch {
			case err != nil:
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case status >= 500:
				span.SetStatus(codes.Error, response.GetStatusReason(response.StatusCode(status)))
			}

			attrs := metric.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.Int("http.response.status_code", status),
			)
			requests.Add(ctx, 1, attrs)
			duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)

			return resp, err
		}
	}, nil
}
