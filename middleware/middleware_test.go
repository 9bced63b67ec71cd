package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
	"github.com/shravanasati/hellowasm/server"
	"github.com/stretchr/testify/require"
)

func newReq(t *testing.T, method, target string) *request.Request {
	t.Helper()
	req, err := request.New(context.Background(), method, target, nil)
	require.NoError(t, err)
	return req
}

func okHandler(_ *request.Request) (response.Response, error) {
	return response.NewTextResponse("ok"), nil
}

var errUpstream = errors.New("upstream unreachable")

func failingHandler(_ *request.Request) (response.Response, error) {
	return nil, errUpstream
}

var _ server.Handler = okHandler
