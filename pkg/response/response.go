// Package response implements the Response Parser & Analyzer (C2): parsing
// possibly-malformed HTTP/1.x response bytes into status + header multimap +
// body, plus predicate helpers over the parsed record.
package response

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/nullbyte-labs/httpforge/pkg/headers"
	"github.com/nullbyte-labs/httpforge/pkg/timing"
)

var statusLineRe = regexp.MustCompile(`(?i)^HTTP/(\d+\.?\d*)\s+(\d+)\s*(.*)?$`)

// Response is the parsed-response data model from §3.
type Response struct {
	RawBytes        []byte
	HTTPVersionText string
	StatusCode      int
	StatusMessage   string
	Headers         *headers.MultiMap
	BodyBytes       []byte
	ParseError      string
	Timing          *timing.Metrics
}

// RawString returns the raw bytes as a string view.
func (r *Response) RawString() string { return string(r.RawBytes) }

// Parse parses possibly-malformed HTTP/1.x response bytes per §4.2. A parse
// error is recorded on the result (never returned as an error value) —
// status_code is left at 0 and the rest of the entity stays intact for
// forensic inspection.
func Parse(raw []byte) *Response {
	r := &Response{
		RawBytes: raw,
		Headers:  headers.NewMultiMap(),
	}

	headerBlock, body, sepLen := splitHeadersBody(raw)
	_ = sepLen
	r.BodyBytes = body

	lines := splitLines(headerBlock)
	if len(lines) == 0 {
		r.ParseError = "empty response"
		return r
	}

	statusLine := lines[0]
	m := statusLineRe.FindStringSubmatch(statusLine)
	if m == nil {
		r.ParseError = "malformed status line: " + statusLine
	} else {
		r.HTTPVersionText = m[1]
		code, err := strconv.Atoi(m[2])
		if err != nil {
			r.ParseError = "malformed status code: " + m[2]
		} else {
			r.StatusCode = code
		}
		r.StatusMessage = strings.TrimSpace(m[3])
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			// No colon, or colon at index 0 (empty name) — skipped.
			continue
		}
		name := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		r.Headers.Add(name, value)
	}

	return r
}

// splitHeadersBody locates the first "\r\n\r\n" or, failing that, "\n\n",
// separator. If neither exists the whole buffer is treated as headers with
// an empty body.
func splitHeadersBody(raw []byte) (headerBlock, body []byte, sepLen int) {
	if idx := bytes.Index(raw, []byte("\r\n\r\n")); idx >= 0 {
		return raw[:idx], raw[idx+4:], 4
	}
	if idx := bytes.Index(raw, []byte("\n\n")); idx >= 0 {
		return raw[:idx], raw[idx+2:], 2
	}
	return raw, nil, 0
}

// splitLines splits a header block on CRLF or LF, tolerating either.
func splitLines(b []byte) []string {
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// SeparatorIndex returns the byte offset of the header/body separator (the
// position just past it) and its length, or (-1, 0) if no separator exists
// in raw. Exported for the pipelined splitter in pkg/transport, which needs
// to locate the boundary without a full Parse.
func SeparatorIndex(raw []byte) (pos int, sepLen int) {
	if idx := bytes.Index(raw, []byte("\r\n\r\n")); idx >= 0 {
		return idx + 4, 4
	}
	if idx := bytes.Index(raw, []byte("\n\n")); idx >= 0 {
		return idx + 2, 2
	}
	return -1, 0
}
