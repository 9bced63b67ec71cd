package server

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/shravanasati/hellowasm/response"
	"go.uber.org/zap"
)

type ServerOpts struct {
	// The address for the server to listen on. Only used by Serve.
	Address string

	// Zero means no timeout.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Upper bound on request header bytes. Zero uses the net/http default.
	MaxHeaderBytes int

	// Recovery takes the return value of the recover() call as input and returns the response sent to the client.
	Recovery func(any) response.Response

	// Logger receives handler errors and recovered panics. Nil disables logging.
	Logger *zap.Logger
}

func (o *ServerOpts) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Recovery == nil {
		o.Recovery = defaultRecovery(o.Logger)
	}
	if o.Address == "" {
		o.Address = ":42069"
	}
}

func defaultRecovery(logger *zap.Logger) func(any) response.Response {
	return func(r any) response.Response {
		logger.Error("recovered from panic",
			zap.String("panic", fmt.Sprint(r)),
			zap.ByteString("stack", debug.Stack()))
		return internalServerError()
	}
}

func internalServerError() response.Response {
	return response.
		NewTextResponse(response.GetStatusReason(response.StatusInternalServerError)).
		WithStatusCode(response.StatusInternalServerError)
}
