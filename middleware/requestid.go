package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"github.com/shravanasati/hellowasm/router"
	"github.com/shravanasati/hellowasm/server"
)

const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDFrom returns the request ID stored in ctx by RequestID, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID tags every request with an ID. An incoming X-Request-Id is kept
// when it is a valid UUID; otherwise a new one is generated. The ID is echoed
// on the response.
func RequestID() router.Middleware {
	return func(next server.Handler) server.Handler {
		return func(r *request.Request) (response.Response, error) {
			id := r.Headers.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			r.Headers.Set(RequestIDHeader, id)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

			resp, err := next(r)
			if resp != nil {
				resp.GetHeaders().Set(RequestIDHeader, id)
			}
			return resp, err
		}
	}
}
