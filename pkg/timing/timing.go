// Package timing provides phase timing capture for raw and HTTP/2 sends (spec §4.4).
package timing

import (
	"fmt"
	"time"
)

// Metrics holds the phase durations derived from a Timer's start/connect/
// first_byte/end timestamps, per §4.4: ttfb = first_byte - start, total =
// end - start, connection = connect - start. The timestamps themselves are
// not carried.
type Metrics struct {
	DNSLookup    time.Duration `json:"dns_lookup"`
	TCPConnect   time.Duration `json:"tcp_connect"`
	TLSHandshake time.Duration `json:"tls_handshake"`
	TTFB         time.Duration `json:"ttfb"`
	Total        time.Duration `json:"total"`
	Connection   time.Duration `json:"connection"`
}

// Timer is an optional phase-timer. A nil *Timer is safe to call methods on
// and records nothing, so callers that don't request collect_timing don't
// pay for timestamp captures.
type Timer struct {
	enabled bool

	start     time.Time
	dnsStart  time.Time
	dnsEnd    time.Time
	tcpStart  time.Time
	tcpEnd    time.Time
	tlsStart  time.Time
	tlsEnd    time.Time
	firstByte time.Time
	end       time.Time
}

// NewTimer creates a timing session. When enabled is false all subsequent
// calls are no-ops and GetMetrics returns a zero Metrics.
func NewTimer(enabled bool) *Timer {
	t := &Timer{enabled: enabled}
	if enabled {
		t.start = time.Now()
	}
	return t
}

func (t *Timer) StartDNS() {
	if t != nil && t.enabled {
		t.dnsStart = time.Now()
	}
}

func (t *Timer) EndDNS() {
	if t != nil && t.enabled {
		t.dnsEnd = time.Now()
	}
}

func (t *Timer) StartTCP() {
	if t != nil && t.enabled {
		t.tcpStart = time.Now()
	}
}

func (t *Timer) EndTCP() {
	if t != nil && t.enabled {
		t.tcpEnd = time.Now()
	}
}

func (t *Timer) StartTLS() {
	if t != nil && t.enabled {
		t.tlsStart = time.Now()
	}
}

func (t *Timer) EndTLS() {
	if t != nil && t.enabled {
		t.tlsEnd = time.Now()
	}
}

// MarkFirstByte records the moment the first response byte was read.
func (t *Timer) MarkFirstByte() {
	if t != nil && t.enabled && t.firstByte.IsZero() {
		t.firstByte = time.Now()
	}
}

// MarkEnd records the moment the response finished being read.
func (t *Timer) MarkEnd() {
	if t != nil && t.enabled {
		t.end = time.Now()
	}
}

// Enabled reports whether this timer is collecting timing.
func (t *Timer) Enabled() bool { return t != nil && t.enabled }

// GetMetrics computes the final Metrics snapshot.
func (t *Timer) GetMetrics() Metrics {
	if t == nil || !t.enabled {
		return Metrics{}
	}

	end := t.end
	if end.IsZero() {
		end = time.Now()
	}

	m := Metrics{
		Total: end.Sub(t.start),
	}

	if !t.dnsStart.IsZero() && !t.dnsEnd.IsZero() {
		m.DNSLookup = t.dnsEnd.Sub(t.dnsStart)
	}
	if !t.tcpStart.IsZero() && !t.tcpEnd.IsZero() {
		m.TCPConnect = t.tcpEnd.Sub(t.tcpStart)
	}
	if !t.tlsStart.IsZero() && !t.tlsEnd.IsZero() {
		m.TLSHandshake = t.tlsEnd.Sub(t.tlsStart)
	}
	if !t.firstByte.IsZero() {
		m.TTFB = t.firstByte.Sub(t.start)
	}

	connectEnd := t.tcpEnd
	if !t.tlsEnd.IsZero() {
		connectEnd = t.tlsEnd
	}
	if !connectEnd.IsZero() {
		m.Connection = connectEnd.Sub(t.start)
	}

	return m
}

// TTFBMillis returns time-to-first-byte in milliseconds.
func (m Metrics) TTFBMillis() int64 { return m.TTFB.Milliseconds() }

// TotalMillis returns total elapsed time in milliseconds.
func (m Metrics) TotalMillis() int64 { return m.Total.Milliseconds() }

// ConnectionMillis returns connection-establishment time in milliseconds.
func (m Metrics) ConnectionMillis() int64 { return m.Connection.Milliseconds() }

func (m Metrics) String() string {
	return fmt.Sprintf("dns=%v tcp=%v tls=%v connection=%v ttfb=%v total=%v",
		m.DNSLookup, m.TCPConnect, m.TLSHandshake, m.Connection, m.TTFB, m.Total)
}
