package transport

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/nullbyte-labs/httpforge/pkg/response"
)

// splitPipelinedResponses splits a single concatenated response stream back
// into up to want individual response byte-slices, per §4.4's ordered
// framing rules, applied once per expected response:
//
//  1. Locate the header/body separator for the next response.
//  2. If Content-Length is present and parses, the body is exactly that
//     many bytes.
//  3. Else if Transfer-Encoding: chunked is present, the body runs to and
//     includes the first "0\r\n\r\n" chunk terminator found after the
//     separator.
//  4. Else assume no body (separator only).
//  5. For the last response in the batch, if rule 2-4 would leave trailing
//     bytes beyond what's consumed, the remainder is folded into that final
//     response instead of being dropped.
func splitPipelinedResponses(data []byte, want int) [][]byte {
	var frames [][]byte
	rest := data

	for i := 0; i < want && len(rest) > 0; i++ {
		isLast := i == want-1

		sepPos, sepLen := response.SeparatorIndex(rest)
		if sepPos < 0 {
			frames = append(frames, rest)
			rest = nil
			break
		}

		headerBlock := rest[:sepPos-sepLen]
		bodyStart := sepPos

		if isLast {
			frames = append(frames, rest)
			rest = nil
			break
		}

		if cl, ok := contentLength(headerBlock); ok {
			end := bodyStart + cl
			if end > len(rest) {
				end = len(rest)
			}
			frames = append(frames, rest[:end])
			rest = rest[end:]
			continue
		}

		if isChunked(headerBlock) {
			term := []byte("0\r\n\r\n")
			idx := bytes.Index(rest[bodyStart:], term)
			if idx < 0 {
				frames = append(frames, rest)
				rest = nil
				break
			}
			end := bodyStart + idx + len(term)
			frames = append(frames, rest[:end])
			rest = rest[end:]
			continue
		}

		frames = append(frames, rest[:bodyStart])
		rest = rest[bodyStart:]
	}

	return frames
}

func contentLength(headerBlock []byte) (int, bool) {
	lines := strings.Split(strings.ReplaceAll(string(headerBlock), "\r\n", "\n"), "\n")
	for _, line := range lines {
		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(line[:idx]))
		if name != "content-length" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(line[idx+1:]))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func isChunked(headerBlock []byte) bool {
	lines := strings.Split(strings.ReplaceAll(string(headerBlock), "\r\n", "\n"), "\n")
	for _, line := range lines {
		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(line[:idx]))
		if name != "transfer-encoding" {
			continue
		}
		if strings.Contains(strings.ToLower(line[idx+1:]), "chunked") {
			return true
		}
	}
	return false
}
