package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/AchilleasB/gordon-events/student-identity-service/internal/adapters/metrics"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/config"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/domain"
	"github.com/AchilleasB/gordon-events/student-identity-service/internal/core/ports"
)

const (
	apiKeyHeader    = "x-api-key"
	contentTypeJSON = "application/json"
	studentsPath    = "/students"
)

// Client fetches the student listing from the upstream directory API. It sends
// exactly one request per Fetch and never retries.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
}

var _ ports.DirectorySource = (*Client)(nil)

type studentsResponse struct {
	Students domain.DirectorySnapshot `json:"students"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
		},
		cb:      config.NewCircuitBreaker(config.BreakerDirectory),
		metrics: m,
	}
}

// BreakerState reports the circuit breaker state for readiness checks.
func (c *Client) BreakerState() gobreaker.State {
	return c.cb.State()
}

func (c *Client) Fetch(ctx context.Context) (domain.DirectorySnapshot, error) {
	start := time.Now()

	res, err := c.cb.Execute(func() (interface{}, error) {
		snapshot, err := c.fetch(ctx)
		if err != nil && ctx.Err() != nil {
			return nil, &FetchError{
				Category:   ErrorCancelled,
				Underlying: fmt.Errorf("%w: %w", config.ErrCallerGone, err),
			}
		}
		return snapshot, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &FetchError{Category: ErrorCircuitOpen, Underlying: err}
		}
		c.metrics.ObserveDirectoryFetch(string(Category(err)), time.Since(start), 0)
		return nil, err
	}

	snapshot := res.(domain.DirectorySnapshot)
	c.metrics.ObserveDirectoryFetch("ok", time.Since(start), len(snapshot))
	return snapshot, nil
}

func (c *Client) fetch(ctx context.Context) (domain.DirectorySnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+studentsPath, nil)
	if err != nil {
		return nil, &FetchError{Category: ErrorUnavailable, Underlying: err}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Category: ErrorUpstreamStatus, StatusCode: resp.StatusCode}
	}

	var body studentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if isTimeout(err) {
			return nil, &FetchError{Category: ErrorTimeout, Underlying: err}
		}
		return nil, &FetchError{Category: ErrorBadData, Underlying: err}
	}
	if body.Students == nil {
		return domain.DirectorySnapshot{}, nil
	}
	return body.Students, nil
}

func transportError(err error) error {
	if isTimeout(err) {
		return &FetchError{Category: ErrorTimeout, Underlying: err}
	}
	return &FetchError{Category: ErrorUnavailable, Underlying: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
