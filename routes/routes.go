// Package routes wires the component's endpoints onto a router.
package routes

import (
	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"github.com/shravanasati/hellowasm/router"
	"github.com/shravanasati/hellowasm/server"
	"github.com/shravanasati/hellowasm/upstream"
	"go.uber.org/zap"
)

const (
	HelloMessage = "Hello from WebAssembly!"
	PostMessage  = "POST request from WebAssembly!"
)

type message struct {
	Message string `json:"message"`
}

type Options struct {
	// Users backs POST /users. Defaults to upstream.New with default options.
	Users  *upstream.Client
	Logger *zap.Logger
	// Middlewares are applied to every route, outermost first.
	Middlewares []router.Middleware
}

// New returns a router with GET /hello, POST /post and POST /users registered in that order.
func New(opts Options) *router.Router {
	if opts.Users == nil {
		opts.Users = upstream.New(upstream.Options{Logger: opts.Logger})
	}

	r := router.NewRouter()
	r.Use(opts.Middlewares...)

	r.Get("/hello", Hello)
	r.Post("/post", Post)
	r.Post("/users", Users(opts.Users))
	return r
}

// Hello answers GET /hello.
func Hello(_ *request.Request) (response.Response, error) {
	return response.NewJSONResponse(message{Message: HelloMessage})
}

// Post answers POST /post.
func Post(_ *request.Request) (response.Response, error) {
	return response.NewJSONResponse(message{Message: PostMessage})
}

// Users answers POST /users with the descriptor of one upstream fetch.
// Fetch failures are returned to the caller as is.
func Users(client *upstream.Client) server.Handler {
	return func(r *request.Request) (response.Response, error) {
		d, err := client.Fetch(r.Context())
		if err != nil {
			return nil, err
		}
		return response.NewJSONResponse(d)
	}
}
