package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	httpClientUserAgent  = "go-erp-auth"
	httpClientRetryCount = 2
	httpClientRetryWait  = 200 * time.Millisecond
)

// HTTPClient is a wrapper around the resty.Client HTTP client used by
// outbound adapters. It embeds *resty.Client to expose all of its methods.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client that identifies itself with
// the service user agent and retries transport errors and 5xx responses a
// few times.
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().SetBody(msg).Post(endpoint)
func NewHTTPClient() *HTTPClient {
	c := resty.New().
		SetHeader("User-Agent", httpClientUserAgent).
		SetRetryCount(httpClientRetryCount).
		SetRetryWaitTime(httpClientRetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	return &HTTPClient{Client: c}
}
