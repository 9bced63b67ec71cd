package upstream

import "errors"

// ErrUnexpectedStatus is returned when the upstream answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// ErrMalformedBody is returned when the upstream body is not valid JSON.
var ErrMalformedBody = errors.New("malformed upstream body")

// ErrBodyTooLarge is returned when the upstream body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("upstream body too large")
