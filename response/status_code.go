package response

import "net/http"

// StatusCode is an HTTP status code.
type StatusCode int

const (
	StatusOK        StatusCode = http.StatusOK
	StatusNoContent StatusCode = http.StatusNoContent

	StatusBadRequest       StatusCode = http.StatusBadRequest
	StatusNotFound         StatusCode = http.StatusNotFound
	StatusMethodNotAllowed StatusCode = http.StatusMethodNotAllowed

	StatusInternalServerError StatusCode = http.StatusInternalServerError
	StatusBadGateway          StatusCode = http.StatusBadGateway
)

// GetStatusReason returns the reason phrase for the given status code,
// or an empty string if the code is unknown.
func GetStatusReason(s StatusCode) string {
	return http.StatusText(int(s))
}

// IsSuccess reports whether s is a 2xx code.
func (s StatusCode) IsSuccess() bool {
	return s >= 200 && s < 300
}
