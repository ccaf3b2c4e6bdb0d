package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/metrics"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every upstream call when no timeout is configured
const DefaultTimeout = 15 * time.Second

// DefaultRetryDelay is the first backoff between attempts
const DefaultRetryDelay = 250 * time.Millisecond

// maxErrorBody caps how much of a failed response is kept on a FetchError
const maxErrorBody = 512

// Client handles GET requests against one upstream API
type Client struct {
	httpClient *http.Client
	provider   string
	baseURL    string
	headers    map[string]string
	metrics    *metrics.Metrics
	retry      *RetryPolicy
}

// New creates a client for provider rooted at baseURL
func New(provider, baseURL string, timeout time.Duration, headers map[string]string, m *metrics.Metrics) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		provider: provider,
		baseURL:  baseURL,
		headers:  headers,
		metrics:  m,
	}
}

// Get fetches baseURL/path?query and returns the raw body. Non-200 responses
// and transport failures are returned as *models.FetchError labelled with call.
func (c *Client) Get(ctx context.Context, call, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	start := time.Now()
	var body []byte
	err := c.retry.Execute(ctx, func() error {
		var err error
		body, err = c.fetch(ctx, call, endpoint)
		return err
	})
	took := time.Since(start)
	c.metrics.ObserveUpstream(c.provider, call, err, took)

	log.Debug().
		Str("provider", c.provider).
		Str("call", call).
		Str("path", path).
		Dur("took", took).
		Err(err).
		Msg("upstream request")

	return body, err
}

// WithRetry makes Get retry transient failures under policy
func (c *Client) WithRetry(policy *RetryPolicy) *Client {
	c.retry = policy
	return c
}

func (c *Client) fetch(ctx context.Context, call, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &models.FetchError{Provider: c.provider, Call: call, Err: fmt.Errorf("creating request: %w", err)}
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.FetchError{Provider: c.provider, Call: call, Err: fmt.Errorf("making request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &models.FetchError{
			Provider:   c.provider,
			Call:       call,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.FetchError{Provider: c.provider, Call: call, Err: fmt.Errorf("reading response: %w", err)}
	}
	return body, nil
}
