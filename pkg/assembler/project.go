package assembler

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderPair is a projected, ordered (name, value) pair — used wherever a
// projection needs a plain list rather than the internal headers.List.
type HeaderPair struct {
	Name  string
	Value string
}

// WellFormedOptions is the well-formed-only projection: raw entries are
// excluded entirely (§4.1).
type WellFormedOptions struct {
	Method  string
	Path    string
	Version string
	Headers []HeaderPair
	Body    []byte
	Host    string
	Port    int
	Scheme  string
}

// WellFormedOptions projects the plan, dropping every raw header entry.
func (p *Plan) WellFormedOptions() WellFormedOptions {
	out := WellFormedOptions{
		Method: p.Method, Path: p.Path, Version: p.Version,
		Body: p.Body, Host: p.Host, Port: p.Port, Scheme: p.Scheme,
	}
	for _, e := range p.Headers.All() {
		if e.IsRaw() {
			continue
		}
		out.Headers = append(out.Headers, HeaderPair{Name: e.Name, Value: e.Value})
	}
	return out
}

// FetchInit is the fetch()-style projection: {method, headers, body}. Raw
// entries are parsed at the first ':' — the first token becomes the name,
// the trimmed remainder the value; entries whose name would be empty are
// rejected (dropped), matching §4.1.
type FetchInit struct {
	Method  string
	Headers []HeaderPair
	Body    []byte
}

// FetchInit projects the plan into the fetch-style init record.
func (p *Plan) FetchInit() FetchInit {
	out := FetchInit{Method: p.Method, Body: p.Body}
	for _, e := range p.Headers.All() {
		if !e.IsRaw() {
			if e.Name == "" {
				continue
			}
			out.Headers = append(out.Headers, HeaderPair{Name: e.Name, Value: e.Value})
			continue
		}
		name, value, ok := splitRawHeaderLine(e.Raw)
		if !ok {
			continue
		}
		out.Headers = append(out.Headers, HeaderPair{Name: name, Value: value})
	}
	return out
}

// splitRawHeaderLine splits a raw header line at the first ':', trimming the
// name and value, and rejects an empty name.
func splitRawHeaderLine(raw []byte) (name, value string, ok bool) {
	idx := indexByte(raw, ':')
	if idx < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(string(raw[:idx]))
	if name == "" {
		return "", "", false
	}
	value = strings.TrimSpace(string(raw[idx+1:]))
	return name, value, true
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// CanonicalURL renders scheme + host + optional port + path, eliding the
// port when it matches the scheme's default (80 for http, 443 for https).
func (p *Plan) CanonicalURL() string {
	hostport := p.Host
	defaultPort := 80
	if p.Scheme == "https" {
		defaultPort = 443
	}
	if p.Port != 0 && p.Port != defaultPort {
		hostport = fmt.Sprintf("%s:%d", p.Host, p.Port)
	}
	return fmt.Sprintf("%s://%s%s", p.Scheme, hostport, p.Path)
}

// authority renders the :authority pseudo-header value (host[:port], port
// elided for scheme defaults).
func (p *Plan) authority() string {
	defaultPort := 80
	if p.Scheme == "https" {
		defaultPort = 443
	}
	if p.Port != 0 && p.Port != defaultPort {
		return fmt.Sprintf("%s:%d", p.Host, p.Port)
	}
	return p.Host
}

// PseudoHeaders returns the HTTP/2 pseudo-header set in the conventional
// :method, :path, :scheme, :authority order (§4.1).
func (p *Plan) PseudoHeaders() []HeaderPair {
	return []HeaderPair{
		{Name: ":method", Value: p.Method},
		{Name: ":path", Value: p.Path},
		{Name: ":scheme", Value: p.Scheme},
		{Name: ":authority", Value: p.authority()},
	}
}

// H2Headers returns the pseudo-header set followed by the regular headers,
// lowercased, with any `host` header suppressed (the :authority pseudo
// header supersedes it) and pseudo-headers preserved ahead of it.
func (p *Plan) H2Headers() []HeaderPair {
	out := p.PseudoHeaders()
	seen := map[string]bool{":method": true, ":path": true, ":scheme": true, ":authority": true}

	addRegular := func(name, value string) {
		low := strings.ToLower(name)
		if low == "host" || seen[low] {
			return
		}
		out = append(out, HeaderPair{Name: low, Value: value})
	}

	for _, e := range p.Headers.All() {
		if !e.IsRaw() {
			addRegular(e.Name, e.Value)
			continue
		}
		name, value, ok := splitRawHeaderLine(e.Raw)
		if !ok {
			continue
		}
		addRegular(name, value)
	}
	return out
}

// portString renders a numeric port as decimal text.
func portString(port int) string {
	return strconv.Itoa(port)
}
