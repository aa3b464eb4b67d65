package transform

import "errors"

var ErrUnknownPass = errors.New("unknown transform pass")
