package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"github.com/shravanasati/hellowasm/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(body string) server.Handler {
	return func(r *request.Request) (response.Response, error) {
		return response.NewTextResponse(body), nil
	}
}

func newReq(t *testing.T, method, target string) *request.Request {
	t.Helper()
	req, err := request.New(context.Background(), method, target, nil)
	require.NoError(t, err)
	return req
}

func readBody(t *testing.T, resp response.Response) string {
	t.Helper()
	if resp.GetBody() == nil {
		return ""
	}
	b, err := io.ReadAll(resp.GetBody())
	require.NoError(t, err)
	return string(b)
}

func TestRouter(t *testing.T) {
	router := NewRouter()

	router.Get("/home", text("get home"))
	router.Post("/home", text("post home"))
	router.Put("/home", text("put home"))
	router.Patch("/home", text("patch home"))
	router.Delete("/home", text("delete home"))
	router.Handle("/any", text("any method"))

	handler := server.NewHTTPHandler(router.Handler(), server.ServerOpts{})

	testCases := []struct {
		method         string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"GET", "/home", http.StatusOK, "get home"},
		{"POST", "/home", http.StatusOK, "post home"},
		{"PUT", "/home", http.StatusOK, "put home"},
		{"PATCH", "/home", http.StatusOK, "patch home"},
		{"DELETE", "/home", http.StatusOK, "delete home"},
		{"GET", "/home?q=1", http.StatusOK, "get home"},
		{"GET", "/any", http.StatusOK, "any method"},
		{"POST", "/any", http.StatusOK, "any method"},
		{"GET", "/notfound", http.StatusNotFound, "404 Not Found"},
		{"OPTIONS", "/home", http.StatusNotFound, "404 Not Found"},
		{"GET", "/home/", http.StatusNotFound, "404 Not Found"},
		{"GET", "/HOME", http.StatusNotFound, "404 Not Found"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRouterFirstRegisteredWins(t *testing.T) {
	router := NewRouter()
	router.Get("/dup", text("first"))
	router.Get("/dup", text("second"))
	router.Handle("/dup", text("any"))

	resp, err := router.Dispatch(newReq(t, "GET", "/dup"))
	require.NoError(t, err)
	assert.Equal(t, "first", readBody(t, resp))

	// the any-method route still serves methods without their own binding
	resp, err = router.Dispatch(newReq(t, "POST", "/dup"))
	require.NoError(t, err)
	assert.Equal(t, "any", readBody(t, resp))
}

func TestRouterWrongMethodIsNotFound(t *testing.T) {
	router := NewRouter()
	router.Post("/post", text("post"))

	resp, err := router.Dispatch(newReq(t, "GET", "/post"))
	require.NoError(t, err)
	assert.Equal(t, response.StatusNotFound, resp.GetStatusCode())
}

func TestRouterHeadFallsBackToGet(t *testing.T) {
	router := NewRouter()
	router.Get("/hello", text("hello"))

	resp, err := router.Dispatch(newReq(t, "HEAD", "/hello"))
	require.NoError(t, err)
	assert.Equal(t, response.StatusOK, resp.GetStatusCode())
	assert.Equal(t, "text/plain; charset=UTF-8", resp.GetHeaders().Get("content-type"))
	assert.Nil(t, resp.GetBody())

	router.Head("/hello", func(r *request.Request) (response.Response, error) {
		return response.NewBaseResponse().WithStatusCode(response.StatusNoContent), nil
	})
	resp, err = router.Dispatch(newReq(t, "HEAD", "/hello"))
	require.NoError(t, err)
	assert.Equal(t, response.StatusNoContent, resp.GetStatusCode())
}

func TestRouterHeadFallbackPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	router := NewRouter()
	router.Get("/fail", func(r *request.Request) (response.Response, error) {
		return nil, boom
	})

	_, err := router.Dispatch(newReq(t, "HEAD", "/fail"))
	assert.ErrorIs(t, err, boom)
}

func TestRouterErrorPropagates(t *testing.T) {
	boom := errors.New("upstream unreachable")
	router := NewRouter()
	router.Post("/users", func(r *request.Request) (response.Response, error) {
		return nil, boom
	})

	resp, err := router.Dispatch(newReq(t, "POST", "/users"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, boom)
}

func TestRouterCustomNotFound(t *testing.T) {
	router := NewRouter()
	router.NotFound(func(r *request.Request) (response.Response, error) {
		return response.NewTextResponse("nothing at " + r.Path).WithStatusCode(response.StatusNotFound), nil
	})

	resp, err := router.Dispatch(newReq(t, "GET", "/missing"))
	require.NoError(t, err)
	assert.Equal(t, response.StatusNotFound, resp.GetStatusCode())
	assert.Equal(t, "nothing at /missing", readBody(t, resp))
}

func TestRouterMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next server.Handler) server.Handler {
			return func(r *request.Request) (response.Response, error) {
				order = append(order, name+" in")
				resp, err := next(r)
				order = append(order, name+" out")
				return resp, err
			}
		}
	}

	router := NewRouter()
	router.Use(mark("a"), mark("b"))
	router.Get("/hello", text("hello"))

	_, err := router.Dispatch(newReq(t, "GET", "/hello"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a in", "b in", "b out", "a out"}, order)

	// middleware also wraps misses
	order = nil
	resp, err := router.Dispatch(newReq(t, "GET", "/nope"))
	require.NoError(t, err)
	assert.Equal(t, response.StatusNotFound, resp.GetStatusCode())
	assert.Len(t, order, 4)
}

func TestRouterRoutes(t *testing.T) {
	router := NewRouter()
	router.Get("/hello", text("hello"))
	router.Register("post", "/post", text("post"))

	routes := router.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "GET", routes[0].Method)
	assert.Equal(t, "/hello", routes[0].Path)
	assert.Equal(t, "POST", routes[1].Method)

	// the copy does not alias the router's routes
	routes[0].Path = "/changed"
	assert.Equal(t, "/hello", router.Routes()[0].Path)
}

func TestRouterRegisterPanics(t *testing.T) {
	router := NewRouter()
	assert.PanicsWithValue(t, ErrNilHandler, func() { router.Get("/x", nil) })
	assert.PanicsWithValue(t, ErrEmptyPath, func() { router.Get("", text("x")) })
	assert.PanicsWithValue(t, ErrNilHandler, func() { router.NotFound(nil) })
}
