//go:build wasip2

// Command component is the WASI HTTP component. Build it with TinyGo:
//
//	tinygo build -target=wasip2 -o hellowasm.wasm ./cmd/component
//
// The host runtime calls the exported wasi:http/incoming-handler once per
// request; main is never used.
package main

import (
	"net/http"

	"github.com/rajatjindal/wasi-go-sdk/pkg/wasihttp"
	"github.com/shravanasati/hellowasm/routes"
	"github.com/shravanasati/hellowasm/server"
	"github.com/shravanasati/hellowasm/upstream"
)

// outbound carries the POST /users fetch. Any http.RoundTripper backed by
// wasi:http/outgoing-handler can be set as its Transport.
var outbound = &http.Client{Transport: http.DefaultTransport}

func init() {
	app := routes.New(routes.Options{
		Users: upstream.New(upstream.Options{
			URL:        upstream.DefaultUsersURL,
			HTTPClient: outbound,
		}),
	})

	wasihttp.Handle(server.NewHTTPHandler(app.Handler(), server.ServerOpts{}).ServeHTTP)
}

func main() {}
