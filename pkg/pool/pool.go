// Package pool implements the Connection Pool (C4): a keyed pool of idle
// TCP/TLS sockets with a per-key capacity and idle-timeout eviction.
package pool

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/nullbyte-labs/httpforge/pkg/constants"
)

// ConnMetadata carries the connection-establishment details the spec's §3
// data model doesn't name but the pooled connection is free to carry
// alongside it (see SPEC_FULL.md's SUPPLEMENTED FEATURES).
type ConnMetadata struct {
	NegotiatedProtocol string
	TLSResumed         bool
	LocalAddr          string
	RemoteAddr         string
	TLSVersionName     string // e.g. "TLS 1.2", empty for plaintext connections
	CipherSuiteName    string // e.g. "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256"
	TLSDeprecated      bool   // negotiated version predates TLS 1.2 (§4.3 probe signal)
}

// Entry is the pooled-connection record from §3.
type Entry struct {
	ID         string
	Conn       net.Conn
	Host       string
	Port       int
	Protocol   string
	LastUsedMs int64
	InUse      bool
	Metadata   ConnMetadata
}

// DialFunc opens a fresh socket for a pool key; tls is true when the key's
// protocol is "https". The pool calls this only when under its per-key cap
// and no idle entry is available.
type DialFunc func(ctx context.Context, host string, port int, tls bool) (net.Conn, ConnMetadata, error)

// Config holds the pool's capacity and eviction settings (§4.3 defaults).
type Config struct {
	MaxConnectionsPerHost int
	IdleTimeout           time.Duration
}

// DefaultConfig returns the spec's §4.3 defaults: 6 connections per host key,
// 30000ms idle timeout.
func DefaultConfig() Config {
	return Config{
		MaxConnectionsPerHost: constants.DefaultMaxConnectionsPerHost,
		IdleTimeout:           constants.DefaultIdleTimeout,
	}
}

type hostBucket struct {
	idle   []*Entry          // LIFO
	active map[string]*Entry // keyed by Entry.ID
}

func newHostBucket() *hostBucket {
	return &hostBucket{active: make(map[string]*Entry)}
}

// Stats is the pool's read-only stats accessor result.
type Stats struct {
	ActiveConns  int
	IdleConns    int
	TotalCreated int64
	TotalReused  int64
}

// Pool is the keyed connection pool described in §4.3.
type Pool struct {
	mu      sync.Mutex
	buckets map[string]*hostBucket
	cfg     Config

	statsCreated int64
	statsReused  int64

	stopSweep chan struct{}
	sweepDone sync.WaitGroup
	destroyed bool
}

// New creates a Pool with the given config and starts its periodic sweep.
func New(cfg Config) *Pool {
	if cfg.MaxConnectionsPerHost <= 0 {
		cfg.MaxConnectionsPerHost = constants.DefaultMaxConnectionsPerHost
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = constants.DefaultIdleTimeout
	}
	p := &Pool{
		buckets:   make(map[string]*hostBucket),
		cfg:       cfg,
		stopSweep: make(chan struct{}),
	}
	p.sweepDone.Add(1)
	go p.sweepLoop()
	return p
}

func key(protocol, host string, port int) string {
	return fmt.Sprintf("%s://%s:%d", protocol, host, port)
}

// Acquire finds an idle entry for (host, port, protocol) and marks it
// in-use; otherwise, if under the per-key cap, dials a new connection;
// otherwise polls every 100ms (§4.3) until a slot appears or ctx is done.
func (p *Pool) Acquire(ctx context.Context, host string, port int, protocol string, dial DialFunc) (*Entry, error) {
	k := key(protocol, host, port)

	for {
		p.mu.Lock()
		b, ok := p.buckets[k]
		if !ok {
			b = newHostBucket()
			p.buckets[k] = b
		}

		if n := len(b.idle); n > 0 {
			e := b.idle[n-1]
			b.idle = b.idle[:n-1]
			e.InUse = true
			b.active[e.ID] = e
			atomic.AddInt64(&p.statsReused, 1)
			p.mu.Unlock()
			return e, nil
		}

		if len(b.active) < p.cfg.MaxConnectionsPerHost {
			resID := "__reserved__" + uuid.NewString()
			b.active[resID] = nil // reserve a slot while dialing
			reservation := func() {
				p.mu.Lock()
				delete(b.active, resID)
				p.mu.Unlock()
			}
			p.mu.Unlock()

			conn, meta, err := dial(ctx, host, port, protocol == "https")
			if err != nil {
				reservation()
				return nil, err
			}

			e := &Entry{
				ID:         uuid.NewString(),
				Conn:       conn,
				Host:       host,
				Port:       port,
				Protocol:   protocol,
				InUse:      true,
				LastUsedMs: nowMs(),
				Metadata:   meta,
			}
			p.mu.Lock()
			delete(b.active, resID)
			b.active[e.ID] = e
			p.mu.Unlock()
			atomic.AddInt64(&p.statsCreated, 1)
			return e, nil
		}

		p.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(constants.PoolAcquirePollInterval):
		}
	}
}

// Release marks an entry not-in-use and returns it to the idle stack,
// refreshing its last-used timestamp. It does not close the socket.
func (p *Pool) Release(e *Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	k := key(e.Protocol, e.Host, e.Port)
	b, ok := p.buckets[k]
	if !ok {
		return
	}
	delete(b.active, e.ID)
	e.InUse = false
	e.LastUsedMs = nowMs()
	b.idle = append(b.idle, e)
}

// Discard removes an entry from the pool and closes its socket, without
// returning it to idle — used when the caller knows the connection is dead.
func (p *Pool) Discard(e *Entry) {
	p.mu.Lock()
	k := key(e.Protocol, e.Host, e.Port)
	if b, ok := p.buckets[k]; ok {
		delete(b.active, e.ID)
	}
	p.mu.Unlock()
	_ = e.Conn.Close()
}

// sweepLoop closes and drops idle entries older than the configured
// timeout every 10s (§4.3), and removes empty buckets.
func (p *Pool) sweepLoop() {
	defer p.sweepDone.Done()
	ticker := time.NewTicker(constants.PoolSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopSweep:
			return
		case <-ticker.C:
			p.sweepOnce()
		}
	}
}

func (p *Pool) sweepOnce() {
	cutoff := nowMs() - p.cfg.IdleTimeout.Milliseconds()

	p.mu.Lock()
	defer p.mu.Unlock()

	for k, b := range p.buckets {
		var kept []*Entry
		for _, e := range b.idle {
			if e.LastUsedMs < cutoff {
				_ = e.Conn.Close()
			} else {
				kept = append(kept, e)
			}
		}
		b.idle = kept

		if len(b.idle) == 0 && len(b.active) == 0 {
			delete(p.buckets, k)
		}
	}
}

// Destroy stops the sweep and closes every socket the pool knows about,
// idle or in-use.
func (p *Pool) Destroy() {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.destroyed = true
	close(p.stopSweep)
	buckets := p.buckets
	p.buckets = make(map[string]*hostBucket)
	p.mu.Unlock()

	p.sweepDone.Wait()

	for _, b := range buckets {
		for _, e := range b.idle {
			_ = e.Conn.Close()
		}
		for _, e := range b.active {
			if e != nil {
				_ = e.Conn.Close()
			}
		}
	}
}

// Stats returns pool-wide totals.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	var s Stats
	for _, b := range p.buckets {
		s.IdleConns += len(b.idle)
		for _, e := range b.active {
			if e != nil {
				s.ActiveConns++
			}
		}
	}
	s.TotalCreated = atomic.LoadInt64(&p.statsCreated)
	s.TotalReused = atomic.LoadInt64(&p.statsReused)
	return s
}

func nowMs() int64 { return time.Now().UnixMilli() }
