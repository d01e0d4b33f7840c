// Package assembler implements the Request Assembler (C3): a builder that
// accumulates method, path, version, headers (structured or raw), body,
// line-ending policy, and request-line separator, then emits exact bytes.
// The assembler never reorders headers, never collapses duplicates, and
// never validates characters — an entry's raw form completely replaces
// formatting.
package assembler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/nullbyte-labs/httpforge/pkg/headers"
)

// LineEnding selects the terminator written after the request line and after
// every header line.
type LineEnding string

const (
	CRLF LineEnding = "\r\n"
	LF   LineEnding = "\n"
	CR   LineEnding = "\r"
)

// Bytes returns the literal terminator bytes for this policy. Any string
// value (not just the three named constants) is valid — arbitrary values are
// used verbatim to produce malformed framing.
func (l LineEnding) Bytes() []byte { return []byte(l) }

// Plan is the request-plan data model from §3: an ordered header-entry list
// plus method/path/version/body/line-ending/separator, and an optional
// connection identity independent of any Host: header.
type Plan struct {
	Method               string
	Path                 string
	Version              string // HTTP version text, e.g. "1.1"
	RequestLineSeparator string // default single SPACE
	LineEnding           LineEnding

	Headers headers.List
	Body    []byte

	// Connection identity, independent of the Host header.
	Host   string
	Port   int
	Scheme string // "http" or "https"

	// RawOverride, when non-nil, is emitted verbatim by Build in place of
	// the request-line/header/body assembly — used for pre-HTTP/1.0
	// requests that carry no version token at all (§4.10's http09_request).
	RawOverride []byte

	id uuid.UUID
}

// New returns a Plan with the spec's defaults: GET /, HTTP/1.1, CRLF
// line-endings, single-space request-line separator.
func New() *Plan {
	return &Plan{
		Method:               "GET",
		Path:                 "/",
		Version:              "1.1",
		RequestLineSeparator: " ",
		LineEnding:           CRLF,
		id:                   uuid.New(),
	}
}

func (p *Plan) SetMethod(m string) *Plan { p.Method = m; return p }
func (p *Plan) SetPath(path string) *Plan { p.Path = path; return p }
func (p *Plan) SetVersion(v string) *Plan { p.Version = v; return p }
func (p *Plan) SetBody(b []byte) *Plan { p.Body = b; return p }
func (p *Plan) SetLineEnding(le LineEnding) *Plan { p.LineEnding = le; return p }
func (p *Plan) SetRequestLineSeparator(sep string) *Plan { p.RequestLineSeparator = sep; return p }

// SetConnection sets the connection identity independent of the Host header.
func (p *Plan) SetConnection(host string, port int, scheme string) *Plan {
	p.Host = host
	p.Port = port
	p.Scheme = scheme
	return p
}

// AddHeader appends a structured (name, value) entry in arrival order.
func (p *Plan) AddHeader(name, value string) *Plan {
	p.Headers.Append(name, value)
	return p
}

// AddRawHeaderLine appends a raw header line, emitted byte-exact at this
// position regardless of content — may contain CR, LF, NUL, or otherwise
// violate the header grammar.
func (p *Plan) AddRawHeaderLine(raw []byte) *Plan {
	p.Headers.AppendRaw(raw)
	return p
}

// SetKeepAlive ensures a Connection header matching the requested mode is
// present. Per §4.4 this is the caller-facing request-from-options helper's
// job, not the transport's — the transport itself never rewrites caller
// bytes.
func (p *Plan) SetKeepAlive(keepAlive bool) *Plan {
	if keepAlive {
		return p.AddHeader("Connection", "keep-alive")
	}
	return p.AddHeader("Connection", "close")
}

// SetJSONBody serializes v and sets it as the body. A Content-Type:
// application/json header is appended unconditionally — even if one is
// already present; deduplication is the caller's choice, not this helper's.
func (p *Plan) SetJSONBody(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.Body = data
	p.AddHeader("Content-Type", "application/json")
	return nil
}

// Clone produces an independent copy suitable for generating variant
// campaigns: headers and body are deep-copied, a fresh trace id is assigned.
func (p *Plan) Clone() *Plan {
	np := *p
	np.Headers = *p.Headers.Clone()
	if p.Body != nil {
		np.Body = make([]byte, len(p.Body))
		copy(np.Body, p.Body)
	}
	np.id = uuid.New()
	return &np
}

// ID returns this plan instance's stable trace id (assigned at New/Clone).
func (p *Plan) ID() uuid.UUID { return p.id }

// Build emits the exact request bytes: request line, header lines in
// insertion order, an empty separator line, then body bytes with no
// separator. This is a pure function of accumulated state — repeated calls
// return byte-identical output.
func (p *Plan) Build() []byte {
	if p.RawOverride != nil {
		return p.RawOverride
	}

	var buf bytes.Buffer

	sep := p.RequestLineSeparator
	buf.WriteString(p.Method)
	buf.WriteString(sep)
	buf.WriteString(p.Path)
	buf.WriteString(sep)
	buf.WriteString("HTTP/")
	buf.WriteString(p.Version)
	buf.Write(p.LineEnding.Bytes())

	for _, e := range p.Headers.All() {
		if e.IsRaw() {
			buf.Write(e.Raw)
		} else {
			buf.WriteString(e.Name)
			buf.WriteString(": ")
			buf.WriteString(e.Value)
		}
		buf.Write(p.LineEnding.Bytes())
	}

	buf.Write(p.LineEnding.Bytes())
	buf.Write(p.Body)

	return buf.Bytes()
}

// RequestLine renders just the first line, for diagnostics.
func (p *Plan) RequestLine() string {
	return fmt.Sprintf("%s%s%s%sHTTP/%s", p.Method, p.RequestLineSeparator, p.Path, p.RequestLineSeparator, p.Version)
}

// Addr returns "host:port", used as a connection-pool key component.
func (p *Plan) Addr() string {
	return p.Host + ":" + strconv.Itoa(p.Port)
}
