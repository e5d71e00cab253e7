package validators

import "errors"

var (
	// ErrUnsupportedType means the value passed to Validate is not a struct
	// or a pointer to one.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrValidationFailed prefixes every rule violation. The wrapped text
	// lists the offending fields by JSON key.
	ErrValidationFailed = errors.New("validation failed")
)
