// Package httpclient wraps outbound HTTP calls with a per-call timeout,
// bounded retries with linear backoff, and normalization of every failure
// mode into a small closed set of categories the rest of the system
// understands. Retries are invisible to callers except as added latency.
//
// Retry policy:
//   - retried only when the failure is transient: the request produced no
//     response at all (network failure, timeout) or the response status is
//     >= 500. Other 4xx responses fail immediately.
//   - the delay before retry n is BaseDelay * n (linear backoff).
//   - after MaxAttempts, the last failure is surfaced through the category
//     mapping below, never as the raw transport error.
package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Failure categories. These are the only errors Do returns on failure;
// callers branch with errors.Is and translate into their own domain errors.
var (
	// ErrNetwork covers timeouts and connectivity failures where no
	// response was received.
	ErrNetwork = errors.New("sunucuya ulaşılamıyor, ağ bağlantısını kontrol edin")
	// ErrBadRequest is a 400 from the upstream.
	ErrBadRequest = errors.New("geçersiz istek")
	// ErrUnauthorized is a 401 from the upstream.
	ErrUnauthorized = errors.New("yetkisiz istek")
	// ErrNotFound is a 404 from the upstream.
	ErrNotFound = errors.New("kaynak bulunamadı")
	// ErrUpstream covers 5xx responses that survived every retry.
	ErrUpstream = errors.New("sunucu hatası, servis şu anda kullanılamıyor")
	// ErrUnexpected covers every status not explicitly enumerated.
	ErrUnexpected = errors.New("beklenmeyen bir hata oluştu")
)

// Options configures a Client.
type Options struct {
	// Timeout bounds each individual attempt. Zero means no client timeout
	// (the per-request context still applies).
	Timeout time.Duration
	// MaxAttempts is the total number of attempts (>=1). Defaults to 3.
	MaxAttempts int
	// BaseDelay is the linear backoff step between attempts. Defaults to 1s.
	BaseDelay time.Duration
	// Logger receives one entry per failed attempt. Defaults to a no-op.
	Logger zerolog.Logger
	// OnAttemptFailure, when set, is invoked once per failed attempt with
	// the call's target. Used to feed retry metrics; it must not block.
	OnAttemptFailure func(target string)
}

// Client performs outbound HTTP calls with retries. It is safe for
// concurrent use.
type Client struct {
	hc          *http.Client
	maxAttempts int
	baseDelay   time.Duration
	log         zerolog.Logger
	onFail      func(target string)
}

// New constructs a Client. Zero-valued options fall back to defaults
// (3 attempts, 1s base delay).
func New(opts Options) *Client {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	return &Client{
		hc:          &http.Client{Timeout: opts.Timeout},
		maxAttempts: opts.MaxAttempts,
		baseDelay:   opts.BaseDelay,
		log:         opts.Logger,
		onFail:      opts.OnAttemptFailure,
	}
}

// Get performs a GET against url, retrying transient failures, and returns
// the raw response body untouched.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.Do(ctx, url, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		return c.hc.Do(req)
	})
}

// Caller produces one HTTP response attempt. It is invoked once per attempt
// with the same configuration, so it must be safe to call repeatedly.
type Caller func(ctx context.Context) (*http.Response, error)

// Do runs call with the client's retry policy. target is used only for
// logging. On success (status < 400) it returns the response body; on
// failure it returns exactly one of the category errors above.
func (c *Client) Do(ctx context.Context, target string, call Caller) ([]byte, error) {
	var lastStatus int
	var gotResponse bool

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err := call(ctx)
		if err != nil {
			c.log.Warn().
				Str("target", target).
				Int("attempt", attempt).
				Err(err).
				Msg("upstream request failed")
			c.countFailure(target)
			gotResponse = false

			if !c.wait(ctx, attempt) {
				break
			}
			continue
		}

		if resp.StatusCode < 400 {
			body, rerr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if rerr != nil {
				return nil, ErrNetwork
			}
			return body, nil
		}

		gotResponse = true
		lastStatus = resp.StatusCode
		resp.Body.Close()
		c.log.Warn().
			Str("target", target).
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Msg("upstream request failed")
		c.countFailure(target)

		// 4xx responses are not transient.
		if resp.StatusCode < 500 {
			break
		}
		if !c.wait(ctx, attempt) {
			break
		}
	}

	if !gotResponse {
		return nil, ErrNetwork
	}
	return nil, normalize(lastStatus)
}

// countFailure invokes the failure hook, never letting it break the call.
func (c *Client) countFailure(target string) {
	if c.onFail == nil {
		return
	}
	defer func() { _ = recover() }()
	c.onFail(target)
}

// wait sleeps for the linear backoff delay before the next retry. It returns
// false when no attempts remain or the context was cancelled.
func (c *Client) wait(ctx context.Context, attempt int) bool {
	if attempt >= c.maxAttempts {
		return false
	}
	select {
	case <-time.After(c.baseDelay * time.Duration(attempt)):
		return true
	case <-ctx.Done():
		return false
	}
}

// normalize maps a transport-level status code onto the closed category set.
func normalize(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrBadRequest
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500 && status <= 599:
		return ErrUpstream
	default:
		return ErrUnexpected
	}
}
