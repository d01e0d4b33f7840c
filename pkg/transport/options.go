package transport

import (
	"crypto/tls"

	"github.com/nullbyte-labs/httpforge/pkg/tlsconfig"
)

// ConnParams is the connection identity from §3: {host, port, scheme},
// independent of any Host: header the caller put on the wire.
type ConnParams struct {
	Host   string
	Port   int
	Scheme string // "http" or "https"
}

// TLSOptions mirrors §6's tls: {...} options block.
type TLSOptions struct {
	RejectUnauthorized bool // default false
	ServerName         string
	Profile            string // "modern"/"secure"/"compatible"/"legacy" (§4.3); overridden by MinVersion/MaxVersion
	MinVersion         uint16
	MaxVersion         uint16
	Ciphers            []uint16
	CertPEM            []byte
	KeyPEM             []byte
	CACerts            [][]byte
}

// ProxyAuth is the proxy.auth option.
type ProxyAuth struct {
	Username string
	Password string
}

// ProxyOptions mirrors §6's proxy: {...} options block. Protocol "socks4"
// and "socks5" are recognized only far enough to be rejected with the
// not-implemented error (§4.4 Non-goal).
type ProxyOptions struct {
	Host     string
	Port     int
	Protocol string // "http", "socks4", "socks5"
	Auth     *ProxyAuth
	Headers  map[string]string
}

// Options is the §6 options record.
type Options struct {
	TimeoutMs     int64
	CollectTiming bool
	KeepAlive     bool // consult the Connection Pool (C4) per §2/§4.4 instead of dialing fresh
	TLS           TLSOptions
	Proxy         *ProxyOptions
}

// DefaultOptions returns the spec's defaults: 30000ms timeout, unauthorized
// TLS certs accepted.
func DefaultOptions() Options {
	return Options{TimeoutMs: 30000}
}

func tlsConfigFromOptions(opts TLSOptions, host string) (*tls.Config, error) {
	cfg := &tls.Config{
		InsecureSkipVerify: !opts.RejectUnauthorized,
		ServerName:         opts.ServerName,
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}
	switch {
	case opts.MinVersion != 0 || opts.MaxVersion != 0:
		profile := tlsconfig.VersionProfile{Min: opts.MinVersion, Max: opts.MaxVersion}
		if profile.Min == 0 {
			profile.Min = tlsconfig.VersionTLS10
		}
		if profile.Max == 0 {
			profile.Max = tlsconfig.VersionTLS13
		}
		tlsconfig.ApplyVersionProfile(cfg, profile)
	case opts.Profile != "":
		if profile, ok := tlsconfig.ProfileByName(opts.Profile); ok {
			tlsconfig.ApplyVersionProfile(cfg, profile)
		} else {
			tlsconfig.ApplyVersionProfile(cfg, tlsconfig.ProfileSecure)
		}
	}

	if len(opts.Ciphers) > 0 {
		cfg.CipherSuites = opts.Ciphers
	} else if cfg.MinVersion != 0 {
		tlsconfig.ApplyCipherSuites(cfg, cfg.MinVersion)
	}

	if len(opts.CertPEM) > 0 && len(opts.KeyPEM) > 0 {
		cert, err := tls.X509KeyPair(opts.CertPEM, opts.KeyPEM)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = append(cfg.Certificates, cert)
	}

	if len(opts.CACerts) > 0 {
		pool := certPoolFromPEMs(opts.CACerts)
		cfg.RootCAs = pool
	}

	return cfg, nil
}
