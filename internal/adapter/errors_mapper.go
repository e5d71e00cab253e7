package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// maxProviderMessage bounds how much of a provider response ends up in logs.
const maxProviderMessage = 256

// mapHTTPError turns a non-2xx answer of the email provider into one of the
// provider sentinels. The provider's own message is kept for the log.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	msg := providerMessage(resp.Body())
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusBadRequest,
		status == http.StatusRequestEntityTooLarge,
		status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrMessageRejected, msg)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrProviderAuth, msg)
	case status == http.StatusNotFound, status == http.StatusMethodNotAllowed:
		return fmt.Errorf("%w: %s", ErrProviderEndpoint, msg)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrProviderThrottled, msg)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d %s", ErrProviderUnavailable, status, msg)
	default:
		return fmt.Errorf("unexpected email provider status %d: %s", status, msg)
	}
}

func providerMessage(body []byte) string {
	msg := strings.Join(strings.Fields(string(body)), " ")
	if len(msg) > maxProviderMessage {
		msg = msg[:maxProviderMessage] + "..."
	}
	return msg
}
