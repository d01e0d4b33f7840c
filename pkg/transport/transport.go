// Package transport implements the Raw HTTP/1.x Transport (C5): single and
// pipelined sends over a raw socket, HTTP CONNECT tunneling, cancellation,
// and phase timing — with no interpretation of the bytes being sent beyond
// what's needed to frame a pipelined response stream.
package transport

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/nullbyte-labs/httpforge/pkg/assembler"
	"github.com/nullbyte-labs/httpforge/pkg/buffer"
	"github.com/nullbyte-labs/httpforge/pkg/constants"
	"github.com/nullbyte-labs/httpforge/pkg/errors"
	"github.com/nullbyte-labs/httpforge/pkg/pool"
	"github.com/nullbyte-labs/httpforge/pkg/response"
	"github.com/nullbyte-labs/httpforge/pkg/timing"
)

// Result is a single send's outcome: the parsed response plus phase timing
// when timing collection was requested.
type Result struct {
	Response *response.Response
	Timing   timing.Metrics
	Metadata pool.ConnMetadata
}

// Transport sends request plans over raw sockets, optionally reusing pooled
// connections and tunneling through an HTTP proxy.
type Transport struct {
	pool *pool.Pool
}

// New creates a Transport backed by a fresh connection pool using the
// spec's §4.3 defaults.
func New() *Transport {
	return &Transport{pool: pool.New(pool.DefaultConfig())}
}

// NewWithPool creates a Transport backed by an existing pool, so callers can
// share one pool across several Transports or tune its config.
func NewWithPool(p *pool.Pool) *Transport {
	return &Transport{pool: p}
}

// Close destroys the underlying connection pool.
func (t *Transport) Close() {
	t.pool.Destroy()
}

func (t *Transport) openConn(ctx context.Context, plan *assembler.Plan, opts Options, timer *timing.Timer) (net.Conn, pool.ConnMetadata, error) {
	if opts.Proxy != nil {
		conn, err := connectThroughProxy(ctx, opts.Proxy, plan.Host, plan.Port, opts.TimeoutMs)
		if err != nil {
			return nil, pool.ConnMetadata{}, err
		}
		if plan.Scheme == "https" {
			tlsConn, meta, err := upgradeTLS(ctx, conn, plan.Host, plan.Port, opts.TLS, timer)
			if err != nil {
				return nil, pool.ConnMetadata{}, err
			}
			return tlsConn, meta, nil
		}
		return conn, pool.ConnMetadata{NegotiatedProtocol: "http/1.1"}, nil
	}

	return Dial(ctx, plan.Host, plan.Port, plan.Scheme, opts.TLS, opts.TimeoutMs, timer)
}

// poolDialFunc adapts openConn to pool.DialFunc's (host, port, tls) shape so
// Acquire can dial a fresh connection on a pool miss using the same proxy/TLS
// path a direct send would use.
func (t *Transport) poolDialFunc(opts Options, timer *timing.Timer) pool.DialFunc {
	return func(ctx context.Context, host string, port int, useTLS bool) (net.Conn, pool.ConnMetadata, error) {
		scheme := "http"
		if useTLS {
			scheme = "https"
		}
		return t.openConn(ctx, &assembler.Plan{Host: host, Port: port, Scheme: scheme}, opts, timer)
	}
}

// acquireConn gets a connection for plan's (host, port, scheme) — from the
// pool when opts.KeepAlive is set (§2: "C4 is consulted by C5 when
// keep-alive is requested"), otherwise a fresh direct dial. entry is non-nil
// only for the pooled path, so the caller knows whether to Release/Discard
// it or just Close the raw socket.
func (t *Transport) acquireConn(ctx context.Context, plan *assembler.Plan, opts Options, timer *timing.Timer) (net.Conn, pool.ConnMetadata, *pool.Entry, error) {
	if !opts.KeepAlive {
		conn, meta, err := t.openConn(ctx, plan, opts, timer)
		return conn, meta, nil, err
	}

	entry, err := t.pool.Acquire(ctx, plan.Host, plan.Port, plan.Scheme, t.poolDialFunc(opts, timer))
	if err != nil {
		return nil, pool.ConnMetadata{}, nil, err
	}
	return entry.Conn, entry.Metadata, entry, nil
}

// releaseConn returns a pooled entry to idle (or discards it if the send
// left the connection in an unknown state), or closes a directly-dialed
// socket outright.
func (t *Transport) releaseConn(conn net.Conn, entry *pool.Entry, bad bool) {
	if entry != nil {
		if bad {
			t.pool.Discard(entry)
		} else {
			t.pool.Release(entry)
		}
		return
	}
	conn.Close()
}

func withTimeout(parent context.Context, timeoutMs int64) (context.Context, context.CancelFunc) {
	if timeoutMs <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(timeoutMs)*time.Millisecond)
}

// RawSend opens a connection — from the pool when opts.KeepAlive is set,
// otherwise a fresh dial — writes the plan's bytes exactly once, reads until
// EOF/close, and parses the result. Cancellation is governed by a single
// overall timer; cleanup (releasing a pooled entry, or closing a direct
// socket) is idempotent regardless of which branch — success, timeout, or
// caller cancel — completes first, since it always runs through the
// deferred releaseConn.
func (t *Transport) RawSend(ctx context.Context, plan *assembler.Plan, opts Options) (*Result, error) {
	ctx, cancel := withTimeout(ctx, opts.TimeoutMs)
	defer cancel()

	timer := timing.NewTimer(opts.CollectTiming)

	conn, meta, entry, err := t.acquireConn(ctx, plan, opts, timer)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewTimeoutError(time.Duration(opts.TimeoutMs) * time.Millisecond)
		}
		return nil, err
	}
	bad := false
	defer func() { t.releaseConn(conn, entry, bad) }()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}

	raw := plan.Build()
	if _, err := conn.Write(raw); err != nil {
		bad = true
		return nil, errors.NewSocketError(err)
	}

	data, err := readUntilCloseOrDeadline(conn, timer)
	if err != nil {
		bad = true
		if len(data) == 0 {
			if ctx.Err() != nil {
				return nil, errors.NewTimeoutError(time.Duration(opts.TimeoutMs) * time.Millisecond)
			}
			return nil, errors.NewSocketError(err)
		}
	}

	timer.MarkEnd()
	resp := response.Parse(data)
	m := timer.GetMetrics()
	resp.Timing = &m

	return &Result{Response: resp, Timing: m, Metadata: meta}, nil
}

// RawSendPipelined concatenates N plans' bytes and writes them in a single
// write, then splits the single response stream back into N responses per
// §4.4's ordered framing rules: locate the header/body separator, then
// prefer a Content-Length-delimited body, else a chunked-terminator
// ("0\r\n\r\n") delimited body, else assume no body, else — for the final
// response in the batch only — consume whatever bytes remain.
func (t *Transport) RawSendPipelined(ctx context.Context, plans []*assembler.Plan, opts Options) ([]*Result, error) {
	if len(plans) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, opts.TimeoutMs)
	defer cancel()

	timer := timing.NewTimer(opts.CollectTiming)

	first := plans[0]
	conn, meta, err := t.openConn(ctx, first, opts, timer)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}

	var combined []byte
	for _, p := range plans {
		combined = append(combined, p.Build()...)
	}
	if _, err := conn.Write(combined); err != nil {
		return nil, errors.NewSocketError(err)
	}

	data, err := readUntilCloseOrDeadline(conn, timer)
	if err != nil && len(data) == 0 {
		return nil, errors.NewSocketError(err)
	}
	timer.MarkEnd()

	frames := splitPipelinedResponses(data, len(plans))
	m := timer.GetMetrics()

	results := make([]*Result, len(frames))
	for i, f := range frames {
		resp := response.Parse(f)
		resp.Timing = &m
		results[i] = &Result{Response: resp, Timing: m, Metadata: meta}
	}
	return results, nil
}

// RawSendRawBytes writes caller-supplied bytes verbatim (bypassing the
// assembler entirely) to (host, port, scheme) and returns the parsed
// response — for fully hand-crafted, possibly-invalid request bytes.
func (t *Transport) RawSendRawBytes(ctx context.Context, host string, port int, scheme string, raw []byte, opts Options) (*Result, error) {
	ctx, cancel := withTimeout(ctx, opts.TimeoutMs)
	defer cancel()

	timer := timing.NewTimer(opts.CollectTiming)

	conn, meta, err := Dial(ctx, host, port, scheme, opts.TLS, opts.TimeoutMs, timer)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}

	if _, err := conn.Write(raw); err != nil {
		return nil, errors.NewSocketError(err)
	}

	data, err := readUntilCloseOrDeadline(conn, timer)
	if err != nil && len(data) == 0 {
		return nil, errors.NewSocketError(err)
	}
	timer.MarkEnd()

	resp := response.Parse(data)
	m := timer.GetMetrics()
	resp.Timing = &m

	return &Result{Response: resp, Timing: m, Metadata: meta}, nil
}

// readUntilCloseOrDeadline reads from conn until EOF, marking the timer's
// first-byte moment on the first successful read. Reading stops with an IO
// error once the total would pass MaxRawBufferSize. Accumulation goes
// through a buffer.Buffer, which spills to a temp file past
// DefaultBodyMemLimit while reading; drainBuffer then reads everything back
// into a single in-memory slice.
func readUntilCloseOrDeadline(conn net.Conn, timer *timing.Timer) ([]byte, error) {
	buf := make([]byte, 32*1024)
	acc := buffer.New(constants.DefaultBodyMemLimit)
	defer acc.Close()
	first := true
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			if first {
				timer.MarkFirstByte()
				first = false
			}
			if acc.Size()+int64(n) > constants.MaxRawBufferSize {
				return drainBuffer(acc), errors.NewIOError("response exceeded max raw buffer size", nil)
			}
			if _, werr := acc.Write(buf[:n]); werr != nil {
				return drainBuffer(acc), werr
			}
		}
		if err != nil {
			if err == io.EOF {
				return drainBuffer(acc), nil
			}
			return drainBuffer(acc), err
		}
	}
}

// drainBuffer reads back everything accumulated so far, whether it stayed in
// memory or spilled to disk, so response.Parse always sees a plain []byte.
func drainBuffer(acc *buffer.Buffer) []byte {
	r, err := acc.Reader()
	if err != nil {
		return acc.Bytes()
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return acc.Bytes()
	}
	return data
}
