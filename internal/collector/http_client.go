package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/qepting91/listen-pipeline/internal/domain"
	"golang.org/x/time/rate"
)

type HTTPClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewHTTPClient fetches resources from baseURL. A zero interval disables request spacing.
func NewHTTPClient(baseURL string, timeout, interval time.Duration) *HTTPClient {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		baseURL:    baseURL,
	}
}

func (hc *HTTPClient) Fetch(ctx context.Context, resource domain.Resource) (json.RawMessage, error) {
	if err := hc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	target, err := url.JoinPath(hc.baseURL, string(resource))
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", resource, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}

	// Unmarshal validates the whole document before copying it
	var payload json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ParseError{URL: target, Err: err}
	}
	return payload, nil
}
