package headers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbyte-labs/httpforge/pkg/headers"
)

func TestListPreservesOrderAndDuplicates(t *testing.T) {
	var l headers.List
	l.Append("Host", "example.com")
	l.Append("X-Test", "1")
	l.Append("X-Test", "2")
	l.AppendRaw([]byte("X-Raw: \x00bad\r\n"))

	entries := l.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, "Host", entries[0].Name)
	assert.Equal(t, "X-Test", entries[1].Name)
	assert.Equal(t, "2", entries[2].Value)
	assert.True(t, entries[3].IsRaw())
	assert.Equal(t, 4, l.Len())
}

func TestListHasIsCaseInsensitiveAndIgnoresRaw(t *testing.T) {
	var l headers.List
	l.Append("Content-Type", "text/plain")
	l.AppendRaw([]byte("X-Weird\r\n"))

	assert.True(t, l.Has("content-type"))
	assert.True(t, l.Has("CONTENT-TYPE"))
	assert.False(t, l.Has("x-weird"))
}

func TestListCloneIsIndependent(t *testing.T) {
	var l headers.List
	raw := []byte("X-Raw: v")
	l.AppendRaw(raw)

	clone := l.Clone()
	// AppendRaw already copied raw, so mutate the original list's stored
	// bytes (All shares them) to prove the clone holds its own copy.
	l.All()[0].Raw[0] = 'Y'

	assert.NotEqual(t, l.All()[0].Raw, clone.All()[0].Raw)
}

func TestMultiMapAddPreservesArrivalOrderAndKeyOrder(t *testing.T) {
	m := headers.NewMultiMap()
	m.Add("Set-Cookie", "a=1")
	m.Add("Content-Length", "10")
	m.Add("set-cookie", "b=2")

	assert.Equal(t, []string{"set-cookie", "content-length"}, m.Keys())
	assert.Equal(t, []string{"a=1", "b=2"}, m.Get("Set-Cookie"))

	v, ok := m.First("set-cookie")
	assert.True(t, ok)
	assert.Equal(t, "a=1", v)
}

func TestMultiMapMissingKey(t *testing.T) {
	m := headers.NewMultiMap()
	assert.False(t, m.Has("nope"))
	_, ok := m.First("nope")
	assert.False(t, ok)
	assert.Empty(t, m.Joined("nope"))
}

func TestMultiMapJoinedCombinesDuplicates(t *testing.T) {
	m := headers.NewMultiMap()
	m.Add("Via", "1.1 proxy-a")
	m.Add("Via", "1.1 proxy-b")

	assert.Equal(t, "1.1 proxy-a, 1.1 proxy-b", m.Joined("via"))
}
