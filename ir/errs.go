package ir

import "errors"

var (
	ErrBadSeverity = errors.New("bad severity")
)
