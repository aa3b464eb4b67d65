package role

import "errors"

var (
	ErrUnknownRole = errors.New("unknown role")
)
