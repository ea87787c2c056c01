package source

import "context"

type retryCtxKey struct{}

// RetryCounters attributes retries to one load when attached to its context.
type RetryCounters struct {
	Total     int64
	Status429 int64
	Status5xx int64
	Net       int64
}

// WithRetryCounters attaches rc to ctx; the transport updates it in place.
func WithRetryCounters(ctx context.Context, rc *RetryCounters) context.Context {
	return context.WithValue(ctx, retryCtxKey{}, rc)
}

func retryCountersFrom(ctx context.Context) *RetryCounters {
	rc, _ := ctx.Value(retryCtxKey{}).(*RetryCounters)
	return rc
}

// add records one retry caused by status, or by a network error when
// status is 0. Safe on a nil receiver.
func (rc *RetryCounters) add(status int) {
	if rc == nil {
		return
	}
	rc.Total++
	switch {
	case status == 0:
		rc.Net++
	case status == 429:
		rc.Status429++
	case status >= 500:
		rc.Status5xx++
	}
}
