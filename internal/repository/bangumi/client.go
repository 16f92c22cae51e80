package bangumi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PizzaHomicide/sedai/internal/domain"
	"github.com/PizzaHomicide/sedai/internal/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://api.bgm.tv"
	DefaultUserAgent = "sedai/dev (https://github.com/PizzaHomicide/sedai)"

	// maxErrorBodySize caps how much of an error response is read for logging
	maxErrorBodySize = 4 * 1024
)

// Options configures a Client
type Options struct {
	BaseURL     string
	UserAgent   string
	AccessToken string
	Timeout     time.Duration
	// RequestsPerSecond paces requests.  Zero or less disables pacing.
	RequestsPerSecond float64
	// HTTPClient replaces the default client, mostly for tests
	HTTPClient *http.Client
}

// Client is the Bangumi REST API client shared by the user and collection repositories
type Client struct {
	baseURL     string
	userAgent   string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[[]byte]
	flights     singleflight.Group
}

// StatusError is returned when Bangumi answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bangumi responded with HTTP %d", e.StatusCode)
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		baseURL:     baseURL,
		userAgent:   userAgent,
		accessToken: opts.AccessToken,
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(limit, 1),
		breaker:     newCircuitBreaker("bangumi-api"),
	}
}

// get performs a GET against path and returns the raw body of a 2xx response.  Non-2xx responses come back as a
// *StatusError, unreachable hosts as a domain.NetworkError.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		if c.accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.accessToken)
		}

		log.Trace("Bangumi request", "url", endpoint)
		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			var urlErr *url.Error
			if errors.As(err, &urlErr) && !errors.Is(err, context.Canceled) {
				return nil, domain.NetworkError{Err: err}
			}
			return nil, err
		}
		defer resp.Body.Close()

		log.Debug("Bangumi response", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: readBodyForError(resp.Body)}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, domain.NetworkError{Err: err}
		}
		return body, nil
	})
}

// readBodyForError reads at most maxErrorBodySize bytes of an error response for diagnostics
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return string(body)
}
