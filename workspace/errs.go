package workspace

import "errors"

var (
	// ErrStale is returned by updates whose version is not newer than
	// the published snapshot's, or that a newer update overtook.
	ErrStale           = errors.New("stale version")
	ErrUnknownDocument = errors.New("unknown document")
)
