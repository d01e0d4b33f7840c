// Package hpack implements the HPACK Codec (C6) from scratch: the integer
// and string primitives, the static table, a dynamic table held in MRU
// order, and an encoder/decoder pair covering the four representations
// defined by RFC 7541 — indexed, literal-with-incremental-indexing,
// literal-without-indexing, and dynamic-table-size-update.
//
// This does not reuse golang.org/x/net/http2/hpack: that package's Huffman
// table is the one piece of HPACK the spec explicitly scopes out (see
// DESIGN.md's Open Questions), and pulling in its encoder/decoder would
// mean carrying working Huffman support we then have to pretend isn't
// there. Writing the primitives directly keeps the Huffman-bytes-pass-
// through behavior an explicit, documented choice instead of an accident of
// which library function got called.
package hpack

import (
	"bytes"
	"errors"

	"github.com/valyala/bytebufferpool"
)

var bufPool bytebufferpool.Pool

// ErrIncompleteInteger is returned when the buffer ends mid-continuation.
var ErrIncompleteInteger = errors.New("hpack: incomplete integer")

// ErrIncompleteString is returned when the buffer ends before a declared
// string length is satisfied.
var ErrIncompleteString = errors.New("hpack: incomplete string literal")

// encodeInteger appends an RFC 7541 §5.1 integer with an N-bit prefix. The
// top (8-N) bits of the first byte (the representation's flag bits) must
// already be set in prefixByte; only the low N bits are used for the
// prefix value.
func encodeInteger(buf *bytes.Buffer, value uint64, n uint, prefixByte byte) {
	max := uint64(1<<n) - 1
	if value < max {
		buf.WriteByte(prefixByte | byte(value))
		return
	}

	buf.WriteByte(prefixByte | byte(max))
	value -= max
	for value >= 128 {
		buf.WriteByte(byte(value%128) | 0x80)
		value /= 128
	}
	buf.WriteByte(byte(value))
}

// decodeInteger reads an RFC 7541 §5.1 integer with an N-bit prefix,
// returning the value and the number of bytes consumed.
func decodeInteger(data []byte, n uint) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrIncompleteInteger
	}
	max := uint64(1<<n) - 1
	value := uint64(data[0]) & max
	if value < max {
		return value, 1, nil
	}

	m := uint64(0)
	i := 1
	for {
		if i >= len(data) {
			return 0, 0, ErrIncompleteInteger
		}
		b := data[i]
		value += uint64(b&0x7f) << m
		i++
		if b&0x80 == 0 {
			break
		}
		m += 7
	}
	return value, i, nil
}

// encodeString appends an RFC 7541 §5.2 string literal. H is always emitted
// as 0 (no Huffman encoding) — see the package doc.
func encodeString(buf *bytes.Buffer, s string) {
	encodeInteger(buf, uint64(len(s)), 7, 0x00)
	buf.WriteString(s)
}

// decodeString reads an RFC 7541 §5.2 string literal, returning the decoded
// value and bytes consumed. When the Huffman bit (H) is set, the raw
// Huffman-coded bytes are returned as-is rather than decoded — intentional,
// documented lossy behavior (see package doc and DESIGN.md's Open
// Questions): a peer that actually Huffman-encodes a header value will get
// back encoded bytes, not the original text, and that is the accepted
// trade-off rather than a silent bug.
func decodeString(data []byte) (string, int, error) {
	if len(data) == 0 {
		return "", 0, ErrIncompleteString
	}
	huffman := data[0]&0x80 != 0
	length, n, err := decodeInteger(data, 7)
	if err != nil {
		return "", 0, err
	}
	total := n + int(length)
	if total > len(data) {
		return "", 0, ErrIncompleteString
	}
	raw := data[n:total]
	if huffman {
		// Pass-through: not a real UTF-8/ASCII string, documented above.
		return string(raw), total, nil
	}
	return string(raw), total, nil
}
