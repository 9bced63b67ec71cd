package router

import (
	"slices"
	"strings"

	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"github.com/shravanasati/hellowasm/server"
)

// MethodAny matches every request method.
const MethodAny = "*"

var defaultNotFoundHandler server.Handler = func(r *request.Request) (response.Response, error) {
	return response.
		NewTextResponse("404 Not Found").
		WithStatusCode(response.StatusNotFound), nil
}

type Middleware func(server.Handler) server.Handler

// Route binds a method and a literal path to a handler.
type Route struct {
	Method  string
	Path    string
	Handler server.Handler
}

func (rt Route) matches(method, path string) bool {
	return (rt.Method == method || rt.Method == MethodAny) && rt.Path == path
}

// Router is a simple HTTP router. Routes are matched on exact method and
// path, in the order they were registered.
type Router struct {
	routes          []Route
	notFoundHandler server.Handler
	middlewares     []Middleware
}

// Creates a new router.
func NewRouter() *Router {
	return &Router{
		notFoundHandler: defaultNotFoundHandler,
		middlewares:     []Middleware{},
	}
}

// Register appends a route. It panics on a nil handler or an empty path,
// both of which are programming errors.
func (r *Router) Register(method, path string, handler server.Handler) {
	if handler == nil {
		panic(ErrNilHandler)
	}
	if path == "" {
		panic(ErrEmptyPath)
	}
	r.routes = append(r.routes, Route{
		Method:  strings.ToUpper(method),
		Path:    path,
		Handler: handler,
	})
}

// Get registers a new GET route.
func (r *Router) Get(path string, handler server.Handler) {
	r.Register(request.GET, path, handler)
}

// Post registers a new POST route.
func (r *Router) Post(path string, handler server.Handler) {
	r.Register(request.POST, path, handler)
}

// Put registers a new PUT route.
func (r *Router) Put(path string, handler server.Handler) {
	r.Register(request.PUT, path, handler)
}

// Patch registers a new PATCH route.
func (r *Router) Patch(path string, handler server.Handler) {
	r.Register(request.PATCH, path, handler)
}

// Delete registers a new DELETE route.
func (r *Router) Delete(path string, handler server.Handler) {
	r.Register(request.DELETE, path, handler)
}

// Options registers a new OPTIONS route.
func (r *Router) Options(path string, handler server.Handler) {
	r.Register(request.OPTIONS, path, handler)
}

// Head registers a new HEAD route.
func (r *Router) Head(path string, handler server.Handler) {
	r.Register(request.HEAD, path, handler)
}

// Handle registers a new route for any HTTP method.
func (r *Router) Handle(path string, handler server.Handler) {
	r.Register(MethodAny, path, handler)
}

// NotFound sets the handler for when no route is found.
func (r *Router) NotFound(handler server.Handler) {
	if handler == nil {
		panic(ErrNilHandler)
	}
	r.notFoundHandler = handler
}

// Use adds middleware to the router.
func (r *Router) Use(m ...Middleware) {
	r.middlewares = append(r.middlewares, m...)
}

// Routes returns a copy of the registered routes in registration order.
func (r *Router) Routes() []Route {
	return slices.Clone(r.routes)
}

func (r *Router) chain(h server.Handler) server.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	return h
}

func (r *Router) match(method, path string) server.Handler {
	for _, rt := range r.routes {
		if rt.matches(method, path) {
			return rt.Handler
		}
	}
	return nil
}

// Dispatch routes a single request through the middleware chain.
// Handler errors are returned unchanged.
func (r *Router) Dispatch(req *request.Request) (response.Response, error) {
	return r.Handler()(req)
}

// Handler returns a server.Handler that routes incoming requests to their
// corresponding handlers based on HTTP method and URL path.
//
// The routing logic follows this priority order:
//  1. First registered route with an equal method (or MethodAny) and path
//  2. For HEAD requests, the GET route for the path, with the body removed
//  3. The not found handler, 404 by default
//
// A route registered for a different method does not match; there is no
// 405 response. The handler applies the middleware chain before routing.
func (r *Router) Handler() server.Handler {
	routingHandler := func(req *request.Request) (response.Response, error) {
		if handler := r.match(req.Method, req.Path); handler != nil {
			return handler(req)
		}

		if req.Method == request.HEAD {
			if getHandler := r.match(request.GET, req.Path); getHandler != nil {
				resp, err := getHandler(req)
				if err != nil {
					return nil, err
				}
				return resp.WithBody(nil), nil
			}
		}

		return r.notFoundHandler(req)
	}

	return r.chain(routingHandler)
}
