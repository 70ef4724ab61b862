// Package common holds the HTTP client configuration shared by API
// clients: a bounded timeout and per-client default headers.
package common

import (
	"bytes"
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds every completion request. On expiry the caller
// treats the request as a service failure and falls back.
const DefaultTimeout = 15 * time.Second

type ClientConfig struct {
	Timeout time.Duration
	Headers map[string]string
}

func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout: DefaultTimeout,
		Headers: make(map[string]string),
	}
}

func NewHTTPClient(config ClientConfig) *http.Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}

// NewRequest builds a context-bound request carrying the client's
// default headers.
func NewRequest(ctx context.Context, method, url string, body []byte, config ClientConfig) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	for key, value := range config.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
