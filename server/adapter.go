package server

import (
	"io"
	"net/http"

	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"go.uber.org/zap"
)

type httpHandler struct {
	handler  Handler
	recovery func(any) response.Response
	logger   *zap.Logger
}

// NewHTTPHandler adapts h to the net/http contract used by both the WASI
// HTTP runtime and the native server.
//
// A handler error never reaches the client as a success: it is logged and
// answered with 500 Internal Server Error. Panics go through opts.Recovery.
func NewHTTPHandler(h Handler, opts ServerOpts) http.Handler {
	opts.setDefaults()
	return &httpHandler{
		handler:  h,
		recovery: opts.Recovery,
		logger:   opts.Logger,
	}
}

func (a *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := request.FromHTTP(r)
	resp := a.dispatch(req)

	if err := writeResponse(w, resp); err != nil {
		a.logger.Warn("unable to write response",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err))
	}
}

func (a *httpHandler) dispatch(req *request.Request) (resp response.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = a.recovery(r)
		}
	}()

	resp, err := a.handler(req)
	if err != nil {
		a.logger.Error("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err))
		return internalServerError()
	}
	if resp == nil {
		a.logger.Error("handler returned no response",
			zap.String("method", req.Method),
			zap.String("path", req.Path))
		return internalServerError()
	}
	return resp
}

func writeResponse(w http.ResponseWriter, resp response.Response) error {
	resp.GetHeaders().CopyTo(w.Header())

	code := resp.GetStatusCode()
	if code == 0 {
		code = response.StatusOK
	}
	w.WriteHeader(int(code))

	body := resp.GetBody()
	if body == nil {
		return nil
	}
	if c, ok := body.(io.Closer); ok {
		defer c.Close()
	}
	_, err := io.Copy(w, body)
	return err
}
