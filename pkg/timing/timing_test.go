package timing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nullbyte-labs/httpforge/pkg/timing"
)

func TestDisabledTimerRecordsNothing(t *testing.T) {
	tm := timing.NewTimer(false)
	tm.StartDNS()
	tm.EndDNS()
	tm.MarkFirstByte()
	tm.MarkEnd()

	assert.False(t, tm.Enabled())
	assert.Equal(t, timing.Metrics{}, tm.GetMetrics())
}

func TestNilTimerIsSafeNoOp(t *testing.T) {
	var tm *timing.Timer
	assert.NotPanics(t, func() {
		tm.StartDNS()
		tm.EndDNS()
		tm.StartTCP()
		tm.EndTCP()
		tm.StartTLS()
		tm.EndTLS()
		tm.MarkFirstByte()
		tm.MarkEnd()
	})
	assert.False(t, tm.Enabled())
	assert.Equal(t, timing.Metrics{}, tm.GetMetrics())
}

func TestEnabledTimerDerivesPhaseDurations(t *testing.T) {
	tm := timing.NewTimer(true)
	assert.True(t, tm.Enabled())

	tm.StartDNS()
	time.Sleep(time.Millisecond)
	tm.EndDNS()

	tm.StartTCP()
	time.Sleep(time.Millisecond)
	tm.EndTCP()

	tm.StartTLS()
	time.Sleep(time.Millisecond)
	tm.EndTLS()

	tm.MarkFirstByte()
	tm.MarkEnd()

	m := tm.GetMetrics()
	assert.Greater(t, m.DNSLookup, time.Duration(0))
	assert.Greater(t, m.TCPConnect, time.Duration(0))
	assert.Greater(t, m.TLSHandshake, time.Duration(0))
	assert.Greater(t, m.TTFB, time.Duration(0))
	assert.Greater(t, m.Total, time.Duration(0))
	assert.GreaterOrEqual(t, m.Connection, m.TLSHandshake)
}

func TestMarkFirstByteOnlyRecordsOnce(t *testing.T) {
	tm := timing.NewTimer(true)
	tm.MarkFirstByte()
	time.Sleep(time.Millisecond)

	m1 := tm.GetMetrics()

	tm.MarkFirstByte() // second call should be a no-op
	m2 := tm.GetMetrics()

	assert.Equal(t, m1.TTFB, m2.TTFB)
}

func TestConnectionFallsBackToTCPWithoutTLS(t *testing.T) {
	tm := timing.NewTimer(true)
	tm.StartTCP()
	tm.EndTCP()
	tm.MarkEnd()

	m := tm.GetMetrics()
	assert.GreaterOrEqual(t, m.Connection, time.Duration(0))
}

func TestMetricsMillisHelpersAndString(t *testing.T) {
	m := timing.Metrics{
		TTFB:       150 * time.Millisecond,
		Total:      300 * time.Millisecond,
		Connection: 50 * time.Millisecond,
	}

	assert.Equal(t, int64(150), m.TTFBMillis())
	assert.Equal(t, int64(300), m.TotalMillis())
	assert.Equal(t, int64(50), m.ConnectionMillis())
	assert.Contains(t, m.String(), "ttfb=150ms")
	assert.Contains(t, m.String(), "total=300ms")
}
