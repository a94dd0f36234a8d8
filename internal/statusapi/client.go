package statusapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultEndpoint is the production review status endpoint.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// StatusError reports a transported response with a non-success code.
// The poll loop classifies it as a transient upstream failure.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("statusapi: unexpected status code %d", e.Code)
}

type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client fetches homework status updates. It only transports bytes;
// payload shape is the validator's concern.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func New(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
	}
}

// Fetch requests updates since the given cursor (unix seconds) and
// returns the raw response body. A non-2xx code yields *StatusError;
// transport failures are returned as-is.
func (c *Client) Fetch(ctx context.Context, from int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("statusapi: build request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	q := url.Values{}
	q.Set("from_date", strconv.FormatInt(from, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("statusapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("statusapi: read body: %w", err)
	}
	return body, nil
}
