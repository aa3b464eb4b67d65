package index

import "errors"

var (
	// ErrNoSuchID is returned for ids no node in the tree declares.
	ErrNoSuchID  = errors.New("no such id")
	ErrBadFilter = errors.New("bad filter")
)
