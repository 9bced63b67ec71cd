package logging

import "errors"

var ErrInvalidLevel = errors.New("invalid log level")
var ErrInvalidFormat = errors.New("invalid log format")
