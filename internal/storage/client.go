package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// client is the throttled HTTP transport shared by the GitHub stores.
type client struct {
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
	token    string
	timeout  time.Duration
	retries  int
}

func newClient(cfg config.GitHubConfig, token string, observer Observer) *client {
	if observer == nil {
		observer = NoopObserver{}
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 5
	}
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		limiter:  rate.NewLimiter(rate.Limit(perSec), 1),
		observer: observer,
		token:    token,
		timeout:  timeout,
		retries:  cfg.MaxRetries,
	}
}

type response struct {
	status int
	body   []byte
}

// do sends the request, retrying transport failures up to c.retries
// times. Non-2xx statuses come back as errors wrapping the package
// sentinels alongside the response.
func (c *client) do(ctx context.Context, method, endpoint string, body []byte) (*response, error) {
	start := time.Now()

	var (
		resp     *response
		err      error
		attempts int
	)
	for {
		attempts++
		resp, err = c.roundTrip(ctx, method, endpoint, body)
		if err == nil || ctx.Err() != nil || !isConnectionError(err) || attempts > c.retries {
			break
		}
	}
	if err != nil && isConnectionError(err) {
		err = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err == nil {
		err = statusError(resp)
	}

	event := RequestEvent{
		Method:    method,
		Endpoint:  endpoint,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	if resp != nil {
		event.Status = resp.status
	}
	c.observer.OnRequest(ctx, event)

	return resp, err
}

func (c *client) roundTrip(ctx context.Context, method, endpoint string, body []byte) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &response{status: httpResp.StatusCode, body: data}, nil
}

func statusError(resp *response) error {
	if resp.status >= 200 && resp.status < 300 {
		return nil
	}
	msg := gjson.GetBytes(resp.body, "message").String()
	if msg == "" {
		msg = http.StatusText(resp.status)
	}
	switch {
	case resp.status == http.StatusNotFound:
		return ErrNotFound
	case resp.status == http.StatusUnauthorized, resp.status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.status == http.StatusConflict, resp.status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrStaleWrite, msg)
	case resp.status >= 500:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.status, msg)
	default:
		return fmt.Errorf("remote returned status %d: %s", resp.status, msg)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
