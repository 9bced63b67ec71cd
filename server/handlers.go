package server

import (
	"github.com/shravanasati/hellowasm/request"
	"github.com/shravanasati/hellowasm/response"
)

// Represents a path handler function. Takes a request and returns a response,
// or an error that the host surfaces as a failed request.
type Handler func(*request.Request) (response.Response, error)
