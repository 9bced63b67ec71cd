package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shravanasati/hellowasm/headers"
)

const (
	GET     = "GET"
	HEAD    = "HEAD"
	POST    = "POST"
	PUT     = "PUT"
	PATCH   = "PATCH"
	DELETE  = "DELETE"
	TRACE   = "TRACE"
	OPTIONS = "OPTIONS"
)

type RequestLine struct {
	Method      string
	Target      string
	HTTPVersion string
}

// Request is a single inbound call as seen by route handlers.
type Request struct {
	RequestLine
	// Path is the decoded URL path of Target, without the query.
	Path    string
	Query   url.Values
	Headers headers.Headers

	body io.Reader
	ctx  context.Context
}

// New creates a request for the given method and target, e.g. "/hello?x=1".
// A nil body is treated as empty.
func New(ctx context.Context, method, target string, body io.Reader) (*Request, error) {
	if method == "" {
		return nil, ErrEmptyMethod
	}
	u, err := url.ParseRequestURI(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return &Request{
		RequestLine: RequestLine{
			Method:      strings.ToUpper(method),
			Target:      target,
			HTTPVersion: "1.1",
		},
		Path:    u.Path,
		Query:   u.Query(),
		Headers: *headers.NewHeaders(),
		body:    body,
		ctx:     ctx,
	}, nil
}

// FromHTTP converts a request handed over by the host into a Request.
// The body is not read; handlers that care consume it through Body.
func FromHTTP(r *http.Request) *Request {
	target := r.URL.RequestURI()
	return &Request{
		RequestLine: RequestLine{
			Method:      r.Method,
			Target:      target,
			HTTPVersion: fmt.Sprintf("%d.%d", r.ProtoMajor, r.ProtoMinor),
		},
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Headers: *headers.FromHTTP(r.Header),
		body:    r.Body,
		ctx:     r.Context(),
	}
}

// Body returns the request body. It is never nil.
func (r *Request) Body() io.Reader {
	if r.body == nil {
		return http.NoBody
	}
	return r.body
}

// Context returns the request's context, which is cancelled by the host
// when the inbound call goes away.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("nil context")
	}
	r2 := new(Request)
	*r2 = *r
	r2.ctx = ctx
	return r2
}
