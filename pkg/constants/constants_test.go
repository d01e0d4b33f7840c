package constants_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nullbyte-labs/httpforge/pkg/constants"
)

func TestPoolDefaultsMatchSpecSection43(t *testing.T) {
	assert.Equal(t, 6, constants.DefaultMaxConnectionsPerHost)
	assert.Equal(t, 30*time.Second, constants.DefaultIdleTimeout)
	assert.Equal(t, 100*time.Millisecond, constants.PoolAcquirePollInterval)
	assert.Equal(t, 10*time.Second, constants.PoolSweepInterval)
}

func TestTransportDefaultsMatchSpecSection44(t *testing.T) {
	assert.Equal(t, 30*time.Second, constants.DefaultTimeout)
	assert.Equal(t, 10*time.Second, constants.DefaultTLSHandshakeTimeout)
}

func TestHTTP2DefaultsMatchSpecSection47(t *testing.T) {
	assert.Equal(t, 100, constants.DefaultMaxConcurrentStreams)
	assert.Equal(t, 65535, constants.DefaultInitialWindowSize)
	assert.Equal(t, 4096, constants.DefaultHpackTableSize)
	assert.Equal(t, "PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n", constants.ConnectionPreface)
}

func TestBufferLimitsAreOrderedSanely(t *testing.T) {
	assert.Equal(t, 4*1024*1024, constants.DefaultBodyMemLimit)
	assert.Less(t, constants.DefaultBodyMemLimit, constants.MaxRawBufferSize)
	assert.Less(t, constants.MaxRawBufferSize, constants.MaxContentLength)
}
