package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbyte-labs/httpforge/pkg/assembler"
)

func TestNewDefaultsMatchSpec(t *testing.T) {
	p := assembler.New()
	assert.Equal(t, "GET", p.Method)
	assert.Equal(t, "/", p.Path)
	assert.Equal(t, "1.1", p.Version)
	assert.Equal(t, " ", p.RequestLineSeparator)
	assert.Equal(t, assembler.CRLF, p.LineEnding)
}

func TestBuildAssemblesRequestLineHeadersAndBody(t *testing.T) {
	p := assembler.New().
		SetMethod("POST").
		SetPath("/submit").
		AddHeader("Host", "example.com").
		AddHeader("Content-Length", "5").
		SetBody([]byte("hello"))

	got := p.Build()
	want := "POST /submit HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"hello"
	assert.Equal(t, want, string(got))
}

func TestBuildIsPureAndRepeatable(t *testing.T) {
	p := assembler.New()
	first := p.Build()
	second := p.Build()
	assert.Equal(t, first, second)
}

func TestRawHeaderLineEmittedVerbatim(t *testing.T) {
	p := assembler.New().AddRawHeaderLine([]byte("X-Evil: a\x00b"))
	got := p.Build()
	assert.Contains(t, string(got), "X-Evil: a\x00b\r\n")
}

func TestCustomLineEndingAndSeparator(t *testing.T) {
	p := assembler.New().
		SetLineEnding(assembler.LF).
		SetRequestLineSeparator("\t").
		AddHeader("Host", "example.com")

	got := string(p.Build())
	assert.Contains(t, got, "GET\t/\tHTTP/1.1\n")
	assert.Contains(t, got, "Host: example.com\n")
}

func TestSetKeepAliveAddsConnectionHeader(t *testing.T) {
	keep := assembler.New().SetKeepAlive(true)
	assert.Contains(t, string(keep.Build()), "Connection: keep-alive\r\n")

	close_ := assembler.New().SetKeepAlive(false)
	assert.Contains(t, string(close_.Build()), "Connection: close\r\n")
}

func TestSetJSONBodySetsContentTypeAndBody(t *testing.T) {
	p := assembler.New()
	err := p.SetJSONBody(map[string]string{"a": "b"})
	assert.NoError(t, err)
	assert.Contains(t, string(p.Build()), "Content-Type: application/json\r\n")
	assert.JSONEq(t, `{"a":"b"}`, string(p.Body))
}

func TestCloneDeepCopiesAndAssignsFreshID(t *testing.T) {
	p := assembler.New().AddHeader("X-A", "1").SetBody([]byte("orig"))
	clone := p.Clone()

	clone.Body[0] = 'O'
	clone.AddHeader("X-B", "2")

	assert.Equal(t, "orig", string(p.Body))
	assert.Equal(t, 1, p.Headers.Len())
	assert.Equal(t, 2, clone.Headers.Len())
	assert.NotEqual(t, p.ID(), clone.ID())
}

func TestRawOverrideBypassesNormalAssembly(t *testing.T) {
	p := assembler.New().SetMethod("GET").SetPath("/index.html")
	p.RawOverride = []byte("GET /index.html\r\n")

	assert.Equal(t, "GET /index.html\r\n", string(p.Build()))
}

func TestAddrJoinsHostAndPort(t *testing.T) {
	p := assembler.New().SetConnection("example.com", 8443, "https")
	assert.Equal(t, "example.com:8443", p.Addr())
}

func TestRequestLineDiagnosticString(t *testing.T) {
	p := assembler.New().SetMethod("HEAD").SetPath("/ping").SetVersion("1.0")
	assert.Equal(t, "HEAD /ping HTTP/1.0", p.RequestLine())
}
