package http2client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbyte-labs/httpforge/pkg/h2frame"
	"github.com/nullbyte-labs/httpforge/pkg/hpack"
)

func TestReassembleBuildsResponseFromHeadersAndDataFrames(t *testing.T) {
	enc := hpack.NewEncoder()
	block := enc.Encode([]hpack.HeaderField{
		{Name: ":status", Value: "200"},
		{Name: "content-type", Value: "text/plain"},
	}, hpack.IncrementalIndexing)

	raw := append(
		h2frame.HEADERS(clientStreamID, block, false, true),
		h2frame.DATA(clientStreamID, []byte("hello"), true)...,
	)

	resp, err := reassemble(raw)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "hello", string(resp.Body))
	v, ok := resp.Headers.First("content-type")
	assert.True(t, ok)
	assert.Equal(t, "text/plain", v)
}

func TestReassembleIgnoresFramesForOtherStreams(t *testing.T) {
	enc := hpack.NewEncoder()
	block := enc.Encode([]hpack.HeaderField{{Name: ":status", Value: "204"}}, hpack.IncrementalIndexing)

	raw := append(
		h2frame.DATA(99, []byte("not mine"), true),
		h2frame.HEADERS(clientStreamID, block, true, true)...,
	)

	resp, err := reassemble(raw)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.Status)
	assert.Empty(t, resp.Body)
}

func TestReassembleErrorsWithoutHeadersFrame(t *testing.T) {
	raw := h2frame.DATA(clientStreamID, []byte("orphan body"), true)
	_, err := reassemble(raw)
	assert.Error(t, err)
}

func TestAtoiSafe(t *testing.T) {
	assert.Equal(t, 200, atoiSafe("200"))
	assert.Equal(t, 0, atoiSafe("not-a-number"))
	assert.Equal(t, 0, atoiSafe(""))
}
