// Package constants defines the default values named throughout the spec.
package constants

import "time"

// Connection pool defaults (§4.3).
const (
	DefaultMaxConnectionsPerHost = 6
	DefaultIdleTimeout           = 30 * time.Second
	PoolAcquirePollInterval      = 100 * time.Millisecond
	PoolSweepInterval            = 10 * time.Second
)

// Transport defaults (§4.4, §6 options).
const (
	DefaultTimeout     = 30 * time.Second
	DefaultTLSHandshakeTimeout = 10 * time.Second
)

// HTTP/2 defaults (§4.7).
const (
	DefaultMaxConcurrentStreams = 100
	DefaultInitialWindowSize    = 65535
	DefaultHpackTableSize       = 4096
	ConnectionPreface           = "PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n"
)

// Buffer limits.
const (
	DefaultBodyMemLimit = 4 * 1024 * 1024       // 4MB
	MaxRawBufferSize    = 100 * 1024 * 1024     // 100MB cap for raw buffer
	MaxContentLength    = 1024 * 1024 * 1024 * 1024 // 1TB sanity cap
)
