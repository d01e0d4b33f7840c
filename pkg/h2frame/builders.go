package h2frame

import (
	"encoding/binary"

	"golang.org/x/net/http2"
)

// DATA builds a DATA frame (RFC 7540 §6.1). Set endStream to mark the last
// frame of the message.
func DATA(streamID uint32, data []byte, endStream bool) []byte {
	var flags http2.Flags
	if endStream {
		flags |= http2.FlagDataEndStream
	}
	return Build(http2.FrameData, flags, streamID, data)
}

// HEADERS builds a HEADERS frame (RFC 7540 §6.2) from an already-HPACK-
// encoded block. Set endStream for a request with no body, endHeaders when
// the block isn't continued across CONTINUATION frames (always true for
// this client, which never emits CONTINUATION).
func HEADERS(streamID uint32, headerBlock []byte, endStream, endHeaders bool) []byte {
	var flags http2.Flags
	if endStream {
		flags |= http2.FlagHeadersEndStream
	}
	if endHeaders {
		flags |= http2.FlagHeadersEndHeaders
	}
	return Build(http2.FrameHeaders, flags, streamID, headerBlock)
}

// ParsedHeaders is the decoded view of an inbound HEADERS frame payload
// after stripping PADDED/PRIORITY framing (RFC 7540 §6.2).
type ParsedHeaders struct {
	HeaderBlockFragment []byte
	Exclusive           bool
	StreamDependency    uint32
	Weight              uint8
	EndStream           bool
	EndHeaders           bool
}

// ParseHEADERSPayload decodes a HEADERS frame's payload, honoring the
// PADDED and PRIORITY flags so the caller gets just the HPACK block.
func ParseHEADERSPayload(flags http2.Flags, payload []byte) (ParsedHeaders, error) {
	ph := ParsedHeaders{
		EndStream:  flags&http2.FlagHeadersEndStream != 0,
		EndHeaders: flags&http2.FlagHeadersEndHeaders != 0,
	}

	p := payload
	if flags&http2.FlagHeadersPadded != 0 {
		if len(p) < 1 {
			return ph, ErrShortBuffer
		}
		padLen := int(p[0])
		p = p[1:]
		if padLen > len(p) {
			return ph, ErrShortBuffer
		}
		p = p[:len(p)-padLen]
	}

	if flags&http2.FlagHeadersPriority != 0 {
		if len(p) < 5 {
			return ph, ErrShortBuffer
		}
		dep := binary.BigEndian.Uint32(p[0:4])
		ph.Exclusive = dep&0x80000000 != 0
		ph.StreamDependency = dep & 0x7fffffff
		ph.Weight = p[4]
		p = p[5:]
	}

	ph.HeaderBlockFragment = p
	return ph, nil
}

// SETTINGS builds a SETTINGS frame (RFC 7540 §6.5). Pass ack=true with a
// nil/empty map for a SETTINGS ACK.
func SETTINGS(settings map[http2.SettingID]uint32, ack bool) []byte {
	if ack {
		return Build(http2.FrameSettings, http2.FlagSettingsAck, 0, nil)
	}
	payload := make([]byte, 0, 6*len(settings))
	for id, val := range settings {
		entry := make([]byte, 6)
		binary.BigEndian.PutUint16(entry[0:2], uint16(id))
		binary.BigEndian.PutUint32(entry[2:6], val)
		payload = append(payload, entry...)
	}
	return Build(http2.FrameSettings, 0, 0, payload)
}

// WINDOW_UPDATE builds a WINDOW_UPDATE frame (RFC 7540 §6.9).
func WINDOW_UPDATE(streamID uint32, increment uint32) []byte {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, increment&0x7fffffff)
	return Build(http2.FrameWindowUpdate, 0, streamID, payload)
}

// PING builds a PING frame (RFC 7540 §6.7).
func PING(data [8]byte, ack bool) []byte {
	var flags http2.Flags
	if ack {
		flags = http2.FlagPingAck
	}
	return Build(http2.FramePing, flags, 0, data[:])
}

// GOAWAY builds a GOAWAY frame (RFC 7540 §6.8).
func GOAWAY(lastStreamID uint32, errorCode uint32, debugData []byte) []byte {
	payload := make([]byte, 8+len(debugData))
	binary.BigEndian.PutUint32(payload[0:4], lastStreamID&0x7fffffff)
	binary.BigEndian.PutUint32(payload[4:8], errorCode)
	copy(payload[8:], debugData)
	return Build(http2.FrameGoAway, 0, 0, payload)
}

// RST_STREAM builds an RST_STREAM frame (RFC 7540 §6.4).
func RST_STREAM(streamID uint32, errorCode uint32) []byte {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, errorCode)
	return Build(http2.FrameRSTStream, 0, streamID, payload)
}

// PRIORITY builds a PRIORITY frame (RFC 7540 §6.3). weight is the caller-
// facing priority weight, 1-255 as a uint8; the wire byte stores weight-1
// per §4.6.
func PRIORITY(streamID uint32, exclusive bool, dependency uint32, weight uint8) []byte {
	payload := make([]byte, 5)
	dep := dependency & 0x7fffffff
	if exclusive {
		dep |= 0x80000000
	}
	binary.BigEndian.PutUint32(payload[0:4], dep)
	payload[4] = weight - 1
	return Build(http2.FramePriority, 0, streamID, payload)
}
