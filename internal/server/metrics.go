package server

import (
	"sync/atomic"
	"time"

	"github.com/Brownie44l1/shipping-http/internal/response"
)

// Metrics counts answered requests by response class. Every counter is
// updated atomically from connection goroutines.
type Metrics struct {
	RequestsTotal     atomic.Int64
	ActiveConnections atomic.Int64

	Served       atomic.Int64 // 2xx
	BadRequests  atomic.Int64 // 400, the request line could not be decoded
	NotFound     atomic.Int64 // any other 4xx, including unknown codes
	ServerErrors atomic.Int64 // 5xx

	latencyNs    atomic.Int64
	maxLatencyNs atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRequest counts one written response and how long the connection
// took to produce it.
func (m *Metrics) RecordRequest(code response.StatusCode, d time.Duration) {
	m.RequestsTotal.Add(1)
	m.latencyNs.Add(d.Nanoseconds())
	m.observeMax(d.Nanoseconds())

	switch {
	case code.IsSuccess():
		m.Served.Add(1)
	case code == response.StatusBadRequest:
		m.BadRequests.Add(1)
	case code.IsServerError():
		m.ServerErrors.Add(1)
	default:
		m.NotFound.Add(1)
	}
}

func (m *Metrics) observeMax(ns int64) {
	for {
		cur := m.maxLatencyNs.Load()
		if ns <= cur || m.maxLatencyNs.CompareAndSwap(cur, ns) {
			return
		}
	}
}

// AverageLatency is the mean over all recorded requests, 0 before the first.
func (m *Metrics) AverageLatency() time.Duration {
	n := m.RequestsTotal.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.latencyNs.Load() / n)
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	RequestsTotal     int64
	ActiveConnections int64
	Served            int64
	BadRequests       int64
	NotFound          int64
	ServerErrors      int64
	AverageLatency    time.Duration
	MaxLatency        time.Duration
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:     m.RequestsTotal.Load(),
		ActiveConnections: m.ActiveConnections.Load(),
		Served:            m.Served.Load(),
		BadRequests:       m.BadRequests.Load(),
		NotFound:          m.NotFound.Load(),
		ServerErrors:      m.ServerErrors.Load(),
		AverageLatency:    m.AverageLatency(),
		MaxLatency:        time.Duration(m.maxLatencyNs.Load()),
	}
}
