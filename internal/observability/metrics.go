package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	started      time.Time
	requestCount map[string]int64
	errorCount   map[string]int64
	totalLatency time.Duration
	requests     int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	UptimeSeconds    int64            `json:"uptime_seconds"`
	Requests         int64            `json:"requests"`
	AvgLatencyMillis float64          `json:"avg_latency_ms"`
	RequestCount     map[string]int64 `json:"request_count"`
	ErrorCount       map[string]int64 `json:"error_count"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		started:      time.Now(),
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests. Keys use the matched
// route pattern so ids in paths do not explode the key space.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey(route, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requests++
	m.totalLatency += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	key := routeKey(route, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		Requests:      m.requests,
		RequestCount:  make(map[string]int64, len(m.requestCount)),
		ErrorCount:    make(map[string]int64, len(m.errorCount)),
	}
	if m.requests > 0 {
		snap.AvgLatencyMillis = float64(m.totalLatency.Microseconds()) / float64(m.requests) / 1000
	}
	for k, v := range m.requestCount {
		snap.RequestCount[k] = v
	}
	for k, v := range m.errorCount {
		snap.ErrorCount[k] = v
	}
	return snap
}

func routeKey(route, method, suffix string) string {
	return method + " " + route + " " + suffix
}
