package response_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbyte-labs/httpforge/pkg/response"
)

func TestParseWellFormedResponse(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello")
	r := response.Parse(raw)

	assert.Empty(t, r.ParseError)
	assert.Equal(t, "1.1", r.HTTPVersionText)
	assert.Equal(t, 200, r.StatusCode)
	assert.Equal(t, "OK", r.StatusMessage)
	assert.Equal(t, "hello", string(r.BodyBytes))
	v, ok := r.GetFirstHeader("content-type")
	assert.True(t, ok)
	assert.Equal(t, "text/plain", v)
}

func TestParseMalformedStatusLineRecordsErrorNotFatal(t *testing.T) {
	raw := []byte("NOT A STATUS LINE\r\nX-Test: 1\r\n\r\nbody")
	r := response.Parse(raw)

	assert.NotEmpty(t, r.ParseError)
	assert.Equal(t, 0, r.StatusCode)
	assert.Equal(t, "body", string(r.BodyBytes))
}

func TestParseEmptyResponse(t *testing.T) {
	r := response.Parse(nil)
	assert.Equal(t, "empty response", r.ParseError)
}

func TestParseDuplicateHeadersPreserved(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nSet-Cookie: a=1\r\nSet-Cookie: b=2\r\n\r\n")
	r := response.Parse(raw)

	assert.Equal(t, []string{"a=1", "b=2"}, r.GetCookies())
}

func TestParseToleratesLFOnlyLineEndings(t *testing.T) {
	raw := []byte("HTTP/1.1 404 Not Found\nX-Test: 1\n\nnot found")
	r := response.Parse(raw)

	assert.Empty(t, r.ParseError)
	assert.Equal(t, 404, r.StatusCode)
	assert.Equal(t, "not found", string(r.BodyBytes))
}

func TestSeparatorIndexFindsCRLFOrLFBoundary(t *testing.T) {
	pos, sepLen := response.SeparatorIndex([]byte("HTTP/1.1 200 OK\r\n\r\nbody"))
	assert.Equal(t, 4, sepLen)
	assert.Equal(t, "body", string([]byte("HTTP/1.1 200 OK\r\n\r\nbody")[pos:]))

	pos2, sepLen2 := response.SeparatorIndex([]byte("no separator here"))
	assert.Equal(t, -1, pos2)
	assert.Equal(t, 0, sepLen2)
}

func TestStatusClassPredicates(t *testing.T) {
	r := response.Parse([]byte("HTTP/1.1 404 Not Found\r\n\r\n"))
	assert.True(t, r.IsClientError())
	assert.False(t, r.IsSuccess())
	assert.True(t, r.HasStatusInRange(400, 499))
	assert.True(t, r.HasStatus(404))
}

func TestBodyContainsCaseSensitivity(t *testing.T) {
	r := response.Parse([]byte("HTTP/1.1 200 OK\r\n\r\nHello World"))
	assert.True(t, r.BodyContains("Hello", true))
	assert.False(t, r.BodyContains("hello", true))
	assert.True(t, r.BodyContains("hello", false))
}

func TestGetContentLength(t *testing.T) {
	withLen := response.Parse([]byte("HTTP/1.1 200 OK\r\nContent-Length: 42\r\n\r\n"))
	assert.Equal(t, 42, withLen.GetContentLength())

	without := response.Parse([]byte("HTTP/1.1 200 OK\r\n\r\n"))
	assert.Equal(t, -1, without.GetContentLength())
}

func TestCheckSmugglingIndicators(t *testing.T) {
	r := response.Parse([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\nTransfer-Encoding: chunked\r\n\r\n"))
	ind := r.CheckSmugglingIndicators()
	assert.Equal(t, 1, ind.ContentLengthCount)
	assert.Equal(t, 1, ind.TransferEncodingCount)
	assert.True(t, ind.BothPresent)
}
