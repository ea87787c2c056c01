package source

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics counts HTTP activity of story loads.
type Metrics struct {
	TotalRequests     atomic.Int64
	TotalRetries      atomic.Int64
	TotalBackoffNanos atomic.Int64

	mu         sync.Mutex
	hostCounts map[string]int64
	status2xx  int64
	status4xx  int64
	status429  int64
	status5xx  int64
}

func NewMetrics() *Metrics { return &Metrics{hostCounts: make(map[string]int64)} }

// IncRequest counts one logical request (retries are counted separately).
func (m *Metrics) IncRequest(host string) {
	m.TotalRequests.Add(1)
	m.mu.Lock()
	m.hostCounts[host]++
	m.mu.Unlock()
}

func (m *Metrics) IncRetry() { m.TotalRetries.Add(1) }

func (m *Metrics) AddBackoff(d time.Duration) { m.TotalBackoffNanos.Add(d.Nanoseconds()) }

// IncStatus buckets a response status code.
func (m *Metrics) IncStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case code == 429:
		m.status429++
	case code >= 200 && code < 300:
		m.status2xx++
	case code >= 400 && code < 500:
		m.status4xx++
	case code >= 500:
		m.status5xx++
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	TotalRequests int64
	TotalRetries  int64
	TotalBackoff  time.Duration
	HostCounts    map[string]int64
	Status2xx     int64
	Status4xx     int64
	Status429     int64
	Status5xx     int64
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	hosts := make(map[string]int64, len(m.hostCounts))
	for k, v := range m.hostCounts {
		hosts[k] = v
	}
	return MetricsSnapshot{
		TotalRequests: m.TotalRequests.Load(),
		TotalRetries:  m.TotalRetries.Load(),
		TotalBackoff:  time.Duration(m.TotalBackoffNanos.Load()),
		HostCounts:    hosts,
		Status2xx:     m.status2xx,
		Status4xx:     m.status4xx,
		Status429:     m.status429,
		Status5xx:     m.status5xx,
	}
}
