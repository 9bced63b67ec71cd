package router

import "errors"

var ErrNilHandler = errors.New("router: nil handler")
var ErrEmptyPath = errors.New("router: empty path")
