// Package h2frame implements the HTTP/2 Framer (C7): encoding and parsing
// of the 9-byte frame header plus per-type payload builders/parsers, built
// directly on golang.org/x/net/http2's FrameType/Flags/SettingID constants
// (reused for their wire-accurate numeric values) without using that
// package's Framer — the spec's raw-frame mode needs byte-exact, caller-
// controlled emission that a higher-level Framer abstraction would fight.
package h2frame

import (
	"encoding/binary"
	"errors"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/http2"
)

var bufPool bytebufferpool.Pool

// ErrShortBuffer is returned by ParseHEADERSPayload when the PADDED or
// PRIORITY fields a HEADERS payload declares do not fit inside it. Parse
// itself signals a short buffer with a nil frame and a nil error instead.
var ErrShortBuffer = errors.New("h2frame: insufficient buffered bytes")

const HeaderLen = 9

// Header is the 9-byte HTTP/2 frame header (RFC 7540 §4.1): 24-bit length,
// 8-bit type, 8-bit flags, 31-bit stream id. The reserved high bit of the
// stream id is ignored on parse and always emitted as zero.
type Header struct {
	Length   uint32 // 24 bits
	Type     http2.FrameType
	Flags    http2.Flags
	StreamID uint32 // 31 bits
}

// EncodeHeader returns the 9-byte big-endian header encoding as a new slice.
func EncodeHeader(h Header) []byte {
	b := make([]byte, HeaderLen)
	b[0] = byte(h.Length >> 16)
	b[1] = byte(h.Length >> 8)
	b[2] = byte(h.Length)
	b[3] = byte(h.Type)
	b[4] = byte(h.Flags)
	binary.BigEndian.PutUint32(b[5:9], h.StreamID&0x7fffffff)
	return b
}

// Frame is a fully parsed frame: header plus raw payload bytes.
type Frame struct {
	Header  Header
	Payload []byte
}

// Parse reads one frame from the front of data. It returns (nil, 0, nil)
// when fewer than 9 bytes, or fewer bytes than the declared payload length,
// are buffered — the sentinel for "keep reading the stream" rather than an
// error. consumed is the number of bytes to advance past on success.
func Parse(data []byte) (frame *Frame, consumed int, err error) {
	if len(data) < HeaderLen {
		return nil, 0, nil
	}

	length := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	h := Header{
		Length:   length,
		Type:     http2.FrameType(data[3]),
		Flags:    http2.Flags(data[4]),
		StreamID: binary.BigEndian.Uint32(data[5:9]) & 0x7fffffff,
	}

	total := HeaderLen + int(length)
	if len(data) < total {
		return nil, 0, nil
	}

	payload := make([]byte, length)
	copy(payload, data[HeaderLen:total])

	return &Frame{Header: h, Payload: payload}, total, nil
}

// Build assembles a complete frame (header + payload) for any frame type,
// the common path every per-type builder in builders.go funnels through. A
// pooled scratch buffer backs the concatenation; the returned slice is a
// fresh copy so it's safe to retain after the pool buffer is recycled.
func Build(frameType http2.FrameType, flags http2.Flags, streamID uint32, payload []byte) []byte {
	h := Header{Length: uint32(len(payload)), Type: frameType, Flags: flags, StreamID: streamID}

	scratch := bufPool.Get()
	defer bufPool.Put(scratch)

	scratch.Write(EncodeHeader(h))
	scratch.Write(payload)

	out := make([]byte, scratch.Len())
	copy(out, scratch.Bytes())
	return out
}
