// Package http2client implements the HTTP/2 Client (C8): a minimal,
// single-stream HTTP/2 client that speaks the wire protocol directly
// through pkg/h2frame and pkg/hpack rather than golang.org/x/net/http2's
// full Transport — the spec's raw-frame mode needs to hand the client
// caller-crafted bytes, preface included, which a conforming Transport
// won't let through.
package http2client

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/http2"

	"github.com/nullbyte-labs/httpforge/pkg/constants"
	httpforgeErrors "github.com/nullbyte-labs/httpforge/pkg/errors"
	"github.com/nullbyte-labs/httpforge/pkg/h2frame"
	"github.com/nullbyte-labs/httpforge/pkg/headers"
	"github.com/nullbyte-labs/httpforge/pkg/hpack"
	"github.com/nullbyte-labs/httpforge/pkg/timing"
	"github.com/nullbyte-labs/httpforge/pkg/tlsconfig"
)

const clientStreamID = 1

// Request is the §4.7/§4.8 request shape: pseudo-headers plus regular
// headers (already split per pkg/assembler's PseudoHeaders/H2Headers
// projections) and an optional body.
type Request struct {
	PseudoHeaders  []hpack.HeaderField
	RegularHeaders []hpack.HeaderField
	Body           []byte
}

// Response is the reassembled stream-1 response: status from the
// :status pseudo-header, the rest of the headers as a multimap, and
// concatenated DATA payloads.
type Response struct {
	Status  int
	Headers *headers.MultiMap
	Body    []byte
	Timing  timing.Metrics
}

// Options mirrors the TLS/timeout subset of §6's options relevant to an
// HTTP/2 connection (ALPN is always offered h2, SNI defaults to host).
type Options struct {
	TimeoutMs          int64
	CollectTiming      bool
	RejectUnauthorized bool // default false: untrusted certs accepted, per §6
	ServerName         string
}

func (o Options) tlsConfig(host string) *tls.Config {
	serverName := o.ServerName
	if serverName == "" {
		serverName = host
	}
	cfg := &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: !o.RejectUnauthorized,
		NextProtos:         []string{"h2"},
	}
	tlsconfig.ApplyVersionProfile(cfg, tlsconfig.ProfileSecure)
	tlsconfig.ApplyCipherSuites(cfg, cfg.MinVersion)
	return cfg
}

// Connect opens a TLS connection with ALPN negotiation for "h2", writes the
// fixed connection preface plus an initial SETTINGS frame, and returns the
// ready-to-use connection.
func Connect(ctx context.Context, host string, port int, opts Options) (net.Conn, *timing.Timer, error) {
	timeout := time.Duration(opts.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	timer := timing.NewTimer(opts.CollectTiming)

	timer.StartTCP()
	d := &net.Dialer{}
	rawConn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	timer.EndTCP()
	if err != nil {
		return nil, nil, httpforgeErrors.NewConnectionError(err)
	}

	timer.StartTLS()
	tlsConn := tls.Client(rawConn, opts.tlsConfig(host))
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		timer.EndTLS()
		return nil, nil, httpforgeErrors.NewTLSError(host, port, err)
	}
	timer.EndTLS()

	if _, err := tlsConn.Write([]byte(constants.ConnectionPreface)); err != nil {
		tlsConn.Close()
		return nil, nil, httpforgeErrors.NewSocketError(err)
	}

	initialSettings := h2frame.SETTINGS(map[http2.SettingID]uint32{
		http2.SettingMaxConcurrentStreams: constants.DefaultMaxConcurrentStreams,
		http2.SettingInitialWindowSize:    constants.DefaultInitialWindowSize,
	}, false)
	if _, err := tlsConn.Write(initialSettings); err != nil {
		tlsConn.Close()
		return nil, nil, httpforgeErrors.NewSocketError(err)
	}

	return tlsConn, timer, nil
}

// Send opens a connection, performs the HTTP/2 handshake, issues the
// request on stream 1 (HEADERS + optional DATA), reads frames until the
// connection closes, and reassembles stream 1's response.
func Send(ctx context.Context, host string, port int, req Request, opts Options) (*Response, error) {
	conn, timer, err := Connect(ctx, host, port, opts)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	enc := hpack.NewEncoder()
	var headerBlock bytes.Buffer
	for _, f := range req.PseudoHeaders {
		enc.EncodeField(&headerBlock, hpack.HeaderField{Name: f.Name, Value: f.Value}, hpack.IncrementalIndexing)
	}
	for _, f := range req.RegularHeaders {
		enc.EncodeField(&headerBlock, hpack.HeaderField{Name: f.Name, Value: f.Value}, hpack.IncrementalIndexing)
	}

	endStream := len(req.Body) == 0
	headersFrame := h2frame.HEADERS(clientStreamID, headerBlock.Bytes(), endStream, true)
	if _, err := conn.Write(headersFrame); err != nil {
		return nil, httpforgeErrors.NewSocketError(err)
	}

	if len(req.Body) > 0 {
		dataFrame := h2frame.DATA(clientStreamID, req.Body, true)
		if _, err := conn.Write(dataFrame); err != nil {
			return nil, httpforgeErrors.NewSocketError(err)
		}
	}

	inbound, err := readAll(conn, timer)
	if err != nil && len(inbound) == 0 {
		return nil, httpforgeErrors.NewSocketError(err)
	}
	timer.MarkEnd()

	resp, err := reassemble(inbound)
	if err != nil {
		return nil, err
	}
	resp.Timing = timer.GetMetrics()
	return resp, nil
}

// SendRawFrames writes caller-supplied frame bytes verbatim — including a
// caller-crafted preface — over a TLS+ALPN("h2") connection, and
// reassembles stream 1's response the same way Send does. Used to exercise
// protocol-violation scenarios the well-formed Send path can't produce.
func SendRawFrames(ctx context.Context, host string, port int, raw []byte, opts Options) (*Response, error) {
	timeout := time.Duration(opts.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	timer := timing.NewTimer(opts.CollectTiming)

	d := &net.Dialer{}
	rawConn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, httpforgeErrors.NewConnectionError(err)
	}

	tlsConn := tls.Client(rawConn, opts.tlsConfig(host))
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, httpforgeErrors.NewTLSError(host, port, err)
	}
	defer tlsConn.Close()

	if _, err := tlsConn.Write(raw); err != nil {
		return nil, httpforgeErrors.NewSocketError(err)
	}

	inbound, err := readAll(tlsConn, timer)
	if err != nil && len(inbound) == 0 {
		return nil, httpforgeErrors.NewSocketError(err)
	}
	timer.MarkEnd()

	resp, err := reassemble(inbound)
	if err != nil {
		return nil, err
	}
	resp.Timing = timer.GetMetrics()
	return resp, nil
}

func readAll(conn net.Conn, timer *timing.Timer) ([]byte, error) {
	buf := make([]byte, 32*1024)
	var out []byte
	first := true
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			if first {
				timer.MarkFirstByte()
				first = false
			}
			out = append(out, buf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return out, nil
			}
			return out, err
		}
	}
}

// reassemble parses every frame in data and reconstructs stream 1's
// response: :status from the decoded pseudo-header, the remaining headers
// as a multimap, DATA payloads concatenated in arrival order.
func reassemble(data []byte) (*Response, error) {
	dec := hpack.NewDecoder()
	resp := &Response{Headers: headers.NewMultiMap()}
	var body bytes.Buffer
	sawHeaders := false

	rest := data
	for len(rest) > 0 {
		frame, consumed, err := h2frame.Parse(rest)
		if err != nil {
			return nil, httpforgeErrors.ErrHTTP2ParseFailed
		}
		if frame == nil {
			break
		}
		rest = rest[consumed:]

		if frame.Header.StreamID != clientStreamID {
			continue
		}

		switch frame.Header.Type {
		case http2.FrameHeaders:
			ph, err := h2frame.ParseHEADERSPayload(frame.Header.Flags, frame.Payload)
			if err != nil {
				return nil, httpforgeErrors.ErrHTTP2ParseFailed
			}
			fields, err := dec.Decode(ph.HeaderBlockFragment)
			if err != nil {
				return nil, httpforgeErrors.ErrHTTP2ParseFailed
			}
			for _, f := range fields {
				if f.Name == ":status" {
					resp.Status = atoiSafe(f.Value)
					continue
				}
				resp.Headers.Add(f.Name, f.Value)
			}
			sawHeaders = true
		case http2.FrameData:
			body.Write(frame.Payload)
		}
	}

	if !sawHeaders {
		return nil, httpforgeErrors.ErrHTTP2ParseFailed
	}

	resp.Body = body.Bytes()
	return resp, nil
}

func atoiSafe(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
