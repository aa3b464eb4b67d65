package parse

import "errors"

var (
	// ErrCanceled wraps the context error of an abandoned parse.
	ErrCanceled = errors.New("parse canceled")
)
