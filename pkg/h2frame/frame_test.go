package h2frame_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http2"

	"github.com/nullbyte-labs/httpforge/pkg/h2frame"
)

func TestEncodeHeaderProducesNineBigEndianBytes(t *testing.T) {
	h := h2frame.Header{Length: 5, Type: http2.FrameData, Flags: http2.FlagDataEndStream, StreamID: 1}
	b := h2frame.EncodeHeader(h)

	require.Len(t, b, 9)
	assert.Equal(t, []byte{0x00, 0x00, 0x05}, b[0:3])
	assert.Equal(t, byte(http2.FrameData), b[3])
	assert.Equal(t, byte(http2.FlagDataEndStream), b[4])
	assert.Equal(t, uint32(1), uint32(b[5])<<24|uint32(b[6])<<16|uint32(b[7])<<8|uint32(b[8]))
}

func TestBuildRoundTripsThroughParse(t *testing.T) {
	built := h2frame.Build(http2.FrameData, http2.FlagDataEndStream, 3, []byte("payload"))

	frame, consumed, err := h2frame.Parse(built)
	require.NoError(t, err)
	require.NotNil(t, frame)
	assert.Equal(t, len(built), consumed)
	assert.Equal(t, uint32(3), frame.Header.StreamID)
	assert.Equal(t, http2.FrameData, frame.Header.Type)
	assert.Equal(t, "payload", string(frame.Payload))
}

func TestBuildReturnsIndependentCopiesAcrossCalls(t *testing.T) {
	a := h2frame.Build(http2.FramePing, 0, 0, []byte("aaaaaaaa"))
	b := h2frame.Build(http2.FramePing, 0, 0, []byte("bbbbbbbb"))

	// mutating b must not retroactively change a, proving the pooled
	// scratch buffer isn't aliased into the returned slices.
	b[9] = 'X'
	assert.Equal(t, byte('a'), a[9])
}

func TestParseReturnsNilOnShortBuffer(t *testing.T) {
	frame, consumed, err := h2frame.Parse([]byte{0x00, 0x00})
	assert.Nil(t, frame)
	assert.Equal(t, 0, consumed)
	assert.NoError(t, err)
}

func TestDATAFrameBuilder(t *testing.T) {
	raw := h2frame.DATA(1, []byte("hi"), true)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FrameData, frame.Header.Type)
	assert.Equal(t, http2.FlagDataEndStream, frame.Header.Flags)
	assert.Equal(t, "hi", string(frame.Payload))
}

func TestWINDOWUPDATEFrameBuilder(t *testing.T) {
	raw := h2frame.WINDOW_UPDATE(0, 65535)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FrameWindowUpdate, frame.Header.Type)
	assert.Equal(t, uint32(4), frame.Header.Length)
}

func TestSETTINGSFrameBuilder(t *testing.T) {
	raw := h2frame.SETTINGS(map[http2.SettingID]uint32{
		http2.SettingMaxConcurrentStreams: 100,
	}, false)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FrameSettings, frame.Header.Type)
	assert.Equal(t, http2.Flags(0), frame.Header.Flags)
	require.Len(t, frame.Payload, 6)
	assert.Equal(t, http2.SettingMaxConcurrentStreams, http2.SettingID(binary.BigEndian.Uint16(frame.Payload[0:2])))
	assert.Equal(t, uint32(100), binary.BigEndian.Uint32(frame.Payload[2:6]))
}

func TestSETTINGSFrameBuilderAck(t *testing.T) {
	raw := h2frame.SETTINGS(nil, true)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FrameSettings, frame.Header.Type)
	assert.Equal(t, http2.FlagSettingsAck, frame.Header.Flags)
	assert.Empty(t, frame.Payload)
}

func TestHEADERSFrameBuilder(t *testing.T) {
	raw := h2frame.HEADERS(1, []byte("hpack-block"), true, true)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FrameHeaders, frame.Header.Type)
	assert.Equal(t, http2.FlagHeadersEndStream|http2.FlagHeadersEndHeaders, frame.Header.Flags)

	ph, err := h2frame.ParseHEADERSPayload(frame.Header.Flags, frame.Payload)
	require.NoError(t, err)
	assert.Equal(t, "hpack-block", string(ph.HeaderBlockFragment))
	assert.True(t, ph.EndStream)
	assert.True(t, ph.EndHeaders)
}

func TestParseHEADERSPayloadHonorsPaddedAndPriorityFlags(t *testing.T) {
	// Hand-assemble a PADDED+PRIORITY payload: pad length byte, the 5-byte
	// dependency/weight field, the HPACK block, then the padding itself —
	// HEADERS() never emits these flags, so this is the only way to exercise
	// ParseHEADERSPayload's stripping logic.
	block := []byte("hpack-block")
	payload := make([]byte, 0, 1+5+len(block)+2)
	payload = append(payload, 2) // pad length
	dep := make([]byte, 4)
	binary.BigEndian.PutUint32(dep, 0x80000007) // exclusive, dependency 7
	payload = append(payload, dep...)
	payload = append(payload, 200) // wire weight (caller weight-1)
	payload = append(payload, block...)
	payload = append(payload, 0, 0) // padding bytes

	flags := http2.FlagHeadersPadded | http2.FlagHeadersPriority | http2.FlagHeadersEndHeaders
	raw := h2frame.Build(http2.FrameHeaders, flags, 3, payload)

	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)

	ph, err := h2frame.ParseHEADERSPayload(frame.Header.Flags, frame.Payload)
	require.NoError(t, err)
	assert.Equal(t, "hpack-block", string(ph.HeaderBlockFragment))
	assert.True(t, ph.Exclusive)
	assert.Equal(t, uint32(7), ph.StreamDependency)
	assert.Equal(t, uint8(200), ph.Weight)
	assert.True(t, ph.EndHeaders)
	assert.False(t, ph.EndStream)
}

func TestPINGFrameBuilder(t *testing.T) {
	data := [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
	raw := h2frame.PING(data, false)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FramePing, frame.Header.Type)
	assert.Equal(t, http2.Flags(0), frame.Header.Flags)
	assert.Equal(t, data[:], frame.Payload)
}

func TestPINGFrameBuilderAck(t *testing.T) {
	data := [8]byte{9, 9, 9, 9, 9, 9, 9, 9}
	raw := h2frame.PING(data, true)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FlagPingAck, frame.Header.Flags)
	assert.Equal(t, data[:], frame.Payload)
}

func TestGOAWAYFrameBuilder(t *testing.T) {
	raw := h2frame.GOAWAY(5, uint32(http2.ErrCodeProtocol), []byte("bye"))
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FrameGoAway, frame.Header.Type)
	require.Len(t, frame.Payload, 8+3)
	assert.Equal(t, uint32(5), binary.BigEndian.Uint32(frame.Payload[0:4])&0x7fffffff)
	assert.Equal(t, uint32(http2.ErrCodeProtocol), binary.BigEndian.Uint32(frame.Payload[4:8]))
	assert.Equal(t, "bye", string(frame.Payload[8:]))
}

func TestRSTSTREAMFrameBuilder(t *testing.T) {
	raw := h2frame.RST_STREAM(7, uint32(http2.ErrCodeCancel))
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FrameRSTStream, frame.Header.Type)
	assert.Equal(t, uint32(7), frame.Header.StreamID)
	require.Len(t, frame.Payload, 4)
	assert.Equal(t, uint32(http2.ErrCodeCancel), binary.BigEndian.Uint32(frame.Payload))
}

func TestPRIORITYFrameBuilder(t *testing.T) {
	raw := h2frame.PRIORITY(9, true, 3, 100)
	frame, _, err := h2frame.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, http2.FramePriority, frame.Header.Type)
	assert.Equal(t, uint32(9), frame.Header.StreamID)
	require.Len(t, frame.Payload, 5)

	dep := binary.BigEndian.Uint32(frame.Payload[0:4])
	assert.True(t, dep&0x80000000 != 0, "exclusive bit should be set")
	assert.Equal(t, uint32(3), dep&0x7fffffff)
	assert.Equal(t, uint8(99), frame.Payload[4], "wire weight is caller weight-1")
}
