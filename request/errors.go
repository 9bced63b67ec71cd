package request

import "errors"

var ErrEmptyMethod = errors.New("empty request method")
var ErrInvalidTarget = errors.New("invalid request target")
