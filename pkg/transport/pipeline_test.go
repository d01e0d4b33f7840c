package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPipelinedResponsesByContentLength(t *testing.T) {
	first := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"
	second := "HTTP/1.1 204 No Content\r\n\r\n"
	data := []byte(first + second)

	frames := splitPipelinedResponses(data, 2)
	assert.Len(t, frames, 2)
	assert.Equal(t, first, string(frames[0]))
	assert.Equal(t, second, string(frames[1]))
}

func TestSplitPipelinedResponsesByChunkedTerminator(t *testing.T) {
	first := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n"
	second := "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nhi"
	data := []byte(first + second)

	frames := splitPipelinedResponses(data, 2)
	assert.Len(t, frames, 2)
	assert.Equal(t, first, string(frames[0]))
	assert.Equal(t, second, string(frames[1]))
}

func TestSplitPipelinedResponsesFoldsTrailingBytesIntoLast(t *testing.T) {
	first := "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"
	second := "HTTP/1.1 200 OK\r\n\r\nextra trailing bytes that don't match any rule"
	data := []byte(first + second)

	frames := splitPipelinedResponses(data, 2)
	assert.Len(t, frames, 2)
	assert.Equal(t, first, string(frames[0]))
	assert.Equal(t, second, string(frames[1]))
}

func TestContentLengthParsesHeaderCaseInsensitively(t *testing.T) {
	n, ok := contentLength([]byte("content-LENGTH: 42\r\nHost: x"))
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = contentLength([]byte("Host: x"))
	assert.False(t, ok)
}

func TestIsChunkedDetectsTransferEncoding(t *testing.T) {
	assert.True(t, isChunked([]byte("Transfer-Encoding: chunked")))
	assert.False(t, isChunked([]byte("Content-Length: 5")))
}
