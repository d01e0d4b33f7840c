package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"strconv"
	"time"

	"github.com/nullbyte-labs/httpforge/pkg/errors"
	"github.com/nullbyte-labs/httpforge/pkg/pool"
	"github.com/nullbyte-labs/httpforge/pkg/timing"
	"github.com/nullbyte-labs/httpforge/pkg/tlsconfig"
)

func certPoolFromPEMs(pems [][]byte) *x509.CertPool {
	p := x509.NewCertPool()
	for _, pem := range pems {
		p.AppendCertsFromPEM(pem)
	}
	return p
}

// dialTCP opens a plain TCP connection to host:port with the given timeout.
func dialTCP(ctx context.Context, host string, port int, timeout time.Duration) (net.Conn, error) {
	d := &net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, errors.NewConnectionError(err)
	}
	return conn, nil
}

// upgradeTLS performs a TLS client handshake over an established plaintext
// socket, honoring SNI-default-to-host (§6) and InsecureSkipVerify (§6's
// reject_unauthorized, default false).
func upgradeTLS(ctx context.Context, conn net.Conn, host string, port int, opts TLSOptions, timer *timing.Timer) (net.Conn, pool.ConnMetadata, error) {
	timer.StartTLS()
	defer timer.EndTLS()

	cfg, err := tlsConfigFromOptions(opts, host)
	if err != nil {
		return nil, pool.ConnMetadata{}, errors.NewTLSError(host, port, err)
	}

	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, pool.ConnMetadata{}, errors.NewTLSError(host, port, err)
	}

	state := tlsConn.ConnectionState()
	meta := pool.ConnMetadata{
		NegotiatedProtocol: state.NegotiatedProtocol,
		TLSResumed:         state.DidResume,
		LocalAddr:          tlsConn.LocalAddr().String(),
		RemoteAddr:         tlsConn.RemoteAddr().String(),
		TLSVersionName:     tlsconfig.GetVersionName(state.Version),
		CipherSuiteName:    tlsconfig.GetCipherSuiteName(state.CipherSuite),
		TLSDeprecated:      tlsconfig.IsVersionDeprecated(state.Version),
	}
	if meta.NegotiatedProtocol == "" {
		meta.NegotiatedProtocol = "http/1.1"
	}

	return tlsConn, meta, nil
}

// Dial opens a socket (and, for https, upgrades it to TLS) for
// (host, port, scheme), recording TCP/TLS phase timing when timer is
// non-nil and enabled. Name resolution happens inside the TCP dial and is
// not timed as a separate DNS phase.
func Dial(ctx context.Context, host string, port int, scheme string, opts TLSOptions, timeoutMs int64, timer *timing.Timer) (net.Conn, pool.ConnMetadata, error) {
	timeout := time.Duration(timeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	timer.StartTCP()
	conn, err := dialTCP(ctx, host, port, timeout)
	timer.EndTCP()
	if err != nil {
		return nil, pool.ConnMetadata{}, err
	}

	if scheme != "https" {
		meta := pool.ConnMetadata{
			NegotiatedProtocol: "http/1.1",
			LocalAddr:          conn.LocalAddr().String(),
			RemoteAddr:         conn.RemoteAddr().String(),
		}
		return conn, meta, nil
	}

	return upgradeTLS(ctx, conn, host, port, opts, timer)
}
