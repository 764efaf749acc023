package ctr

import "errors"

var (
	errInvalidIVSize  = errors.New("ctr: iv must be one AES block (16 bytes)")
	errLengthMismatch = errors.New("ctr: dst and src must be the same length")
)
