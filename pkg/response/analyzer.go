package response

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// IsSuccess reports status in [200,299].
func (r *Response) IsSuccess() bool { return r.StatusCode >= 200 && r.StatusCode <= 299 }

// IsRedirect reports status in [300,399].
func (r *Response) IsRedirect() bool { return r.StatusCode >= 300 && r.StatusCode <= 399 }

// IsClientError reports status in [400,499].
func (r *Response) IsClientError() bool { return r.StatusCode >= 400 && r.StatusCode <= 499 }

// IsServerError reports status in [500,599].
func (r *Response) IsServerError() bool { return r.StatusCode >= 500 && r.StatusCode <= 599 }

// HasStatus reports an exact status code match.
func (r *Response) HasStatus(code int) bool { return r.StatusCode == code }

// HasStatusInRange reports status in [lo, hi] inclusive.
func (r *Response) HasStatusInRange(lo, hi int) bool {
	return r.StatusCode >= lo && r.StatusCode <= hi
}

// BodyContains reports whether the body contains s, case-sensitively by
// default.
func (r *Response) BodyContains(s string, caseSensitive bool) bool {
	if caseSensitive {
		return bytes.Contains(r.BodyBytes, []byte(s))
	}
	return strings.Contains(strings.ToLower(string(r.BodyBytes)), strings.ToLower(s))
}

// BodyMatches reports whether the body matches a regular expression.
func (r *Response) BodyMatches(pattern string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.Match(r.BodyBytes), nil
}

// RawContains reports whether the raw response bytes contain s.
func (r *Response) RawContains(s string) bool {
	return bytes.Contains(r.RawBytes, []byte(s))
}

// HasHeader reports whether name has at least one value.
func (r *Response) HasHeader(name string) bool { return r.Headers.Has(name) }

// GetHeader returns all values for name.
func (r *Response) GetHeader(name string) []string { return r.Headers.Get(name) }

// GetFirstHeader returns the first value for name, if present.
func (r *Response) GetFirstHeader(name string) (string, bool) { return r.Headers.First(name) }

// HeaderContains reports whether any value of name contains substr.
func (r *Response) HeaderContains(name, substr string) bool {
	for _, v := range r.Headers.Get(name) {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}

// GetContentLength parses the Content-Length header, returning -1 if absent
// or unparseable.
func (r *Response) GetContentLength() int {
	v, ok := r.Headers.First("content-length")
	if !ok {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return -1
	}
	return n
}

// GetContentType returns the Content-Type header value, if present.
func (r *Response) GetContentType() (string, bool) { return r.Headers.First("content-type") }

// GetCookies returns the stored set-cookie values verbatim, in arrival order.
func (r *Response) GetCookies() []string { return r.Headers.Get("set-cookie") }

// SmugglingIndicators reports the counts needed to detect a CL/TE
// desync candidate.
type SmugglingIndicators struct {
	ContentLengthCount     int
	TransferEncodingCount  int
	BothPresent            bool
}

// CheckSmugglingIndicators returns counts of content-length and
// transfer-encoding header occurrences plus a both-present flag.
func (r *Response) CheckSmugglingIndicators() SmugglingIndicators {
	cl := len(r.Headers.Get("content-length"))
	te := len(r.Headers.Get("transfer-encoding"))
	return SmugglingIndicators{
		ContentLengthCount:    cl,
		TransferEncodingCount: te,
		BothPresent:           cl > 0 && te > 0,
	}
}
