package crypto

import "errors"

var (
	ErrInvalidHashFormat  = errors.New("invalid PHC format")
	ErrUnsupportedHash    = errors.New("unsupported password hash")
	ErrInvalidHashParams  = errors.New("invalid argon2 parameters")
	ErrInvalidCodeLength  = errors.New("invalid code length")
	ErrRandomSourceFailed = errors.New("random source failed")
)
