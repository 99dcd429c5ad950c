package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/i474232898/weather-cards/internal/weather"
)

var (
	errNoHTTPClient   = errors.New("http client not configured")
	errMissingCurrent = errors.New("response has no current block")
)

// HTTPClientConfig bundles the outbound HTTP client and base URL of a provider.
type HTTPClientConfig struct {
	Client  *http.Client
	BaseURL string
}

// doJSONRequest issues a single GET and decodes a JSON body into out.
// Transport failures, non-2xx statuses and undecodable bodies are all
// reported as *weather.NetworkError. There is no retry.
func doJSONRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	op, subject string,
	buildRequest func(ctx context.Context) (*http.Request, error),
	out any,
) error {
	netErr := func(code int, status string, err error) error {
		return &weather.NetworkError{Op: op, Subject: subject, StatusCode: code, Status: status, Err: err}
	}

	if cfg.Client == nil {
		return netErr(0, "", errNoHTTPClient)
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return netErr(0, "", err)
	}

	resp, err := cfg.Client.Do(req)
	if err != nil {
		return netErr(0, "", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return netErr(resp.StatusCode, resp.Status, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return netErr(0, "", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
