package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the subset of clockwork.Clock the transport needs; tests pass a
// fake that advances on Sleep.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Limit is a token-bucket rate: RPS with a burst capacity.
type Limit struct {
	RPS   float64
	Burst int
}

// TransportOptions configures the retrying, rate-limited transport.
type TransportOptions struct {
	RetryMax    int
	BackoffBase time.Duration
	BackoffCap  time.Duration
	JitterFn    func(base time.Duration, attempt int) time.Duration
	Clock       Clock
	Metrics     *Metrics

	// DefaultLimit applies to every host.
	DefaultLimit Limit
}

// DefaultTransportOptions returns defaults for a story backend, tunable via
// STORYMAP_RPS, STORYMAP_RETRY_MAX and STORYMAP_RETRY_BASE_MS.
func DefaultTransportOptions() TransportOptions {
	lim := Limit{RPS: 5, Burst: 5}
	if v := strings.TrimSpace(os.Getenv("STORYMAP_RPS")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			lim.RPS = f
			lim.Burst = max(1, int(f))
		}
	}
	retryMax := 3
	if v := strings.TrimSpace(os.Getenv("STORYMAP_RETRY_MAX")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			retryMax = n
		}
	}
	backoffBase := 250 * time.Millisecond
	if v := strings.TrimSpace(os.Getenv("STORYMAP_RETRY_BASE_MS")); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			backoffBase = time.Duration(ms) * time.Millisecond
		}
	}

	return TransportOptions{
		RetryMax:    retryMax,
		BackoffBase: backoffBase,
		BackoffCap:  5 * time.Second,
		Clock:       clockwork.NewRealClock(),
		JitterFn: func(base time.Duration, _ int) time.Duration {
			if base <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(base.Nanoseconds()))
		},
		Metrics:      NewMetrics(),
		DefaultLimit: lim,
	}
}

type tokenBucket struct {
	mu     sync.Mutex
	rps    float64
	burst  float64
	tokens float64
	last   time.Time
	clock  Clock
}

func newTokenBucket(lim Limit, clock Clock) *tokenBucket {
	if lim.RPS <= 0 {
		lim.RPS = 5
	}
	return &tokenBucket{
		rps:    lim.RPS,
		burst:  float64(max(1, lim.Burst)),
		tokens: float64(max(1, lim.Burst)),
		last:   clock.Now(),
		clock:  clock,
	}
}

func (tb *tokenBucket) wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tb.mu.Lock()
		now := tb.clock.Now()
		if delta := now.Sub(tb.last).Seconds() * tb.rps; delta > 0 {
			tb.tokens = math.Min(tb.burst, tb.tokens+delta)
			tb.last = now
		}
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		need := time.Duration((1 - tb.tokens) / tb.rps * float64(time.Second))
		tb.mu.Unlock()
		tb.clock.Sleep(max(need, 5*time.Millisecond))
	}
}

// RetryingTransport wraps a RoundTripper with per-host rate limiting and
// retries on 429, 502-504 and transient network errors.
type RetryingTransport struct {
	Base http.RoundTripper
	Opts TransportOptions

	mu       sync.Mutex
	limiters map[string]*tokenBucket
}

func NewRetryingTransport(opts TransportOptions) *RetryingTransport {
	return &RetryingTransport{Opts: opts, limiters: make(map[string]*tokenBucket)}
}

func (t *RetryingTransport) limiter(host string) *tokenBucket {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tb, ok := t.limiters[host]; ok {
		return tb
	}
	tb := newTokenBucket(t.Opts.DefaultLimit, t.clock())
	t.limiters[host] = tb
	return tb
}

func (t *RetryingTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *RetryingTransport) clock() Clock {
	if t.Opts.Clock != nil {
		return t.Opts.Clock
	}
	return clockwork.NewRealClock()
}

func (t *RetryingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := bufferBody(req); err != nil {
		return nil, err
	}
	lim := t.limiter(req.URL.Host)
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.IncRequest(req.URL.Host)
	}
	counters := retryCountersFrom(req.Context())

	attempts := max(1, t.Opts.RetryMax+1)
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := lim.wait(req.Context()); err != nil {
			return nil, err
		}
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}

		resp, err := t.base().RoundTrip(req)
		last := attempt == attempts-1
		if err != nil {
			if !isTransient(err) || last {
				return nil, err
			}
			lastErr = err
			counters.add(0)
			t.recordRetry(t.backoff(attempt))
			continue
		}

		if t.Opts.Metrics != nil {
			t.Opts.Metrics.IncStatus(resp.StatusCode)
		}
		if !retryableStatus(resp.StatusCode) || last {
			return resp, nil
		}

		resp.Body.Close()
		counters.add(resp.StatusCode)
		delay := parseRetryAfter(resp.Header.Get("Retry-After"), t.clock().Now())
		if delay > 0 {
			delay = min(delay, t.cap())
			t.clock().Sleep(delay)
		} else {
			delay = t.backoff(attempt)
		}
		t.recordRetry(delay)
	}
	if lastErr == nil {
		lastErr = errors.New("max retries exceeded")
	}
	return nil, lastErr
}

func (t *RetryingTransport) recordRetry(slept time.Duration) {
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.IncRetry()
		t.Opts.Metrics.AddBackoff(slept)
	}
}

func (t *RetryingTransport) cap() time.Duration {
	if t.Opts.BackoffCap <= 0 {
		return 5 * time.Second
	}
	return t.Opts.BackoffCap
}

// backoff sleeps base*2^attempt plus jitter, capped, and returns the delay.
func (t *RetryingTransport) backoff(attempt int) time.Duration {
	base := t.Opts.BackoffBase
	if base <= 0 {
		base = 250 * time.Millisecond
	}
	delay := min(time.Duration(float64(base)*math.Pow(2, float64(attempt))), t.cap())
	if t.Opts.JitterFn != nil {
		delay = min(delay+t.Opts.JitterFn(delay, attempt), t.cap())
	}
	t.clock().Sleep(delay)
	return delay
}

// bufferBody makes a request body replayable across retries.
func bufferBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}
	buf, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	req.Body.Close()
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}
	req.Body = io.NopCloser(bytes.NewReader(buf))
	return nil
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "temporary") ||
		strings.Contains(msg, "connection reset") || strings.Contains(msg, "connection refused")
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout
}

func parseRetryAfter(h string, now time.Time) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if when, err := http.ParseTime(h); err == nil && when.After(now) {
		return when.Sub(now)
	}
	return 0
}
