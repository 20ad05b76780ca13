package cryptox

import "errors"

var (
	ErrInvalidHash          = errors.New("invalid password hash")
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
	ErrInvalidParams        = errors.New("invalid hash parameters")
)
