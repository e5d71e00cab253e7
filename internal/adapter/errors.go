package adapter

import "errors"

var (
	ErrUnknownEmailMode = errors.New("unknown email mode")
	ErrInvalidRecipient = errors.New("invalid email recipient")
	ErrDelivery         = errors.New("email delivery failed")
)

// Email provider outcomes, see mapHTTPError.
var (
	ErrMessageRejected     = errors.New("email provider rejected the message")
	ErrProviderAuth        = errors.New("email provider refused the credentials")
	ErrProviderEndpoint    = errors.New("email provider endpoint not found")
	ErrProviderThrottled   = errors.New("email provider throttled the request")
	ErrProviderUnavailable = errors.New("email provider unavailable")
)
