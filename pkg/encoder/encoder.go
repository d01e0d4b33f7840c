// Package encoder implements the Byte Encoder (C1): a set of named string
// transformations used to build obfuscated attack payloads, plus the fixed
// path-traversal variant generator.
package encoder

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// URLEncode percent-encodes s using the standard reserved-character set.
func URLEncode(s string) string {
	return url.QueryEscape(s)
}

// DoubleURLEncode percent-encodes s twice, so a single decode step still
// leaves percent-escapes behind.
func DoubleURLEncode(s string) string {
	return url.QueryEscape(url.QueryEscape(s))
}

// URLEncodeAll percent-encodes every byte of s, including characters a
// normal URL encoder would leave alone.
func URLEncodeAll(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&b, "%%%02X", s[i])
	}
	return b.String()
}

// UnicodeEscape renders every rune of s as a \uXXXX escape.
func UnicodeEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		fmt.Fprintf(&b, "\\u%04x", r)
	}
	return b.String()
}

// HexEncode renders every byte of s as a \xXX escape.
func HexEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&b, "\\x%02x", s[i])
	}
	return b.String()
}

// OctalEncode renders every byte of s as a \OOO escape.
func OctalEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&b, "\\%03o", s[i])
	}
	return b.String()
}

// HTMLEntityEncode renders every byte of s as a decimal HTML character
// reference.
func HTMLEntityEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		fmt.Fprintf(&b, "&#%d;", s[i])
	}
	return b.String()
}

// Base64Encode renders s as standard base64.
func Base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// OverlongUTF8Encode renders each ASCII byte of s as an invalid 2-byte
// overlong UTF-8 sequence (0xC0-0xC1 lead byte) — the classic directory-
// traversal WAF-bypass encoding for '/' and '.'. Non-ASCII bytes are passed
// through unchanged since the overlong form only makes sense for 7-bit
// code points.
func OverlongUTF8Encode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x80 {
			b.WriteByte(0xC0 | (c >> 6))
			b.WriteByte(0x80 | (c & 0x3F))
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// MixedEncode alternates between plain and percent-encoded bytes, starting
// plain, to produce payloads that defeat naive pattern matching without
// being uniformly encoded.
func MixedEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i%2 == 0 {
			b.WriteByte(s[i])
		} else {
			fmt.Fprintf(&b, "%%%02X", s[i])
		}
	}
	return b.String()
}

// HexEncodeBytes renders b as a plain lowercase hex dump (hex.EncodeToString),
// with no escape prefix per byte.
func HexEncodeBytes(b []byte) string { return hex.EncodeToString(b) }

// pathTraversalVariantForms is the fixed, ordered list of "../" obfuscations
// used by PathTraversalVariants, every one representing one directory
// level of traversal.
var pathTraversalVariantForms = []func(depth int) string{
	func(depth int) string { return strings.Repeat("../", depth) },
	func(depth int) string { return strings.Repeat("..\\", depth) },
	func(depth int) string { return strings.Repeat("..%2f", depth) },
	func(depth int) string { return strings.Repeat("..%5c", depth) },
	func(depth int) string { return strings.Repeat("%2e%2e/", depth) },
	func(depth int) string { return strings.Repeat("%2e%2e%2f", depth) },
	func(depth int) string { return strings.Repeat("..%252f", depth) },
	func(depth int) string { return strings.Repeat("....//", depth) },
	func(depth int) string { return strings.Repeat("..././", depth) },
	func(depth int) string { return strings.Repeat("%c0%ae%c0%ae/", depth) },
	func(depth int) string { return strings.Repeat("..;/", depth) },
	func(depth int) string { return strings.Repeat("..%c0%af", depth) },
	func(depth int) string { return strings.Repeat("..%c1%9c", depth) },
}

// PathTraversalVariants returns the fixed 13-element ordered list of
// "../" obfuscation forms for the given traversal depth (§4.8). The order
// is stable across calls and releases — callers that index into the
// result rely on positional identity, not just content.
func PathTraversalVariants(depth int) []string {
	out := make([]string, len(pathTraversalVariantForms))
	for i, f := range pathTraversalVariantForms {
		out[i] = f(depth)
	}
	return out
}
