package encode

import "errors"

var ErrUnknownFormat = errors.New("unknown format")
