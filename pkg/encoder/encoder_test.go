package encoder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbyte-labs/httpforge/pkg/encoder"
)

func TestURLEncode(t *testing.T) {
	assert.Equal(t, "a+b", encoder.URLEncode("a b"))
}

func TestDoubleURLEncode(t *testing.T) {
	assert.Equal(t, "a%252Bb", encoder.DoubleURLEncode("a+b"))
}

func TestURLEncodeAllEncodesEveryByte(t *testing.T) {
	assert.Equal(t, "%41%42", encoder.URLEncodeAll("AB"))
}

func TestUnicodeEscape(t *testing.T) {
	assert.Equal(t, "\\u0041\\u0042", encoder.UnicodeEscape("AB"))
}

func TestHexEncode(t *testing.T) {
	assert.Equal(t, "\\x41\\x42", encoder.HexEncode("AB"))
}

func TestOctalEncode(t *testing.T) {
	assert.Equal(t, "\\101\\102", encoder.OctalEncode("AB"))
}

func TestHTMLEntityEncode(t *testing.T) {
	assert.Equal(t, "&#65;&#66;", encoder.HTMLEntityEncode("AB"))
}

func TestBase64Encode(t *testing.T) {
	assert.Equal(t, "QUI=", encoder.Base64Encode("AB"))
}

func TestOverlongUTF8EncodeASCIIOnly(t *testing.T) {
	got := encoder.OverlongUTF8Encode("/")
	assert.Equal(t, []byte{0xC0, 0xAF}, []byte(got))
}

func TestOverlongUTF8EncodePassesThroughNonASCII(t *testing.T) {
	got := encoder.OverlongUTF8Encode("é")
	assert.Equal(t, "é", got)
}

func TestMixedEncodeAlternatesPlainAndPercent(t *testing.T) {
	assert.Equal(t, "A%42", encoder.MixedEncode("AB"))
}

func TestHexEncodeBytes(t *testing.T) {
	assert.Equal(t, "4142", encoder.HexEncodeBytes([]byte("AB")))
}

func TestPathTraversalVariantsIsStableOrderedAndSized(t *testing.T) {
	variants := encoder.PathTraversalVariants(2)
	assert.Len(t, variants, 13)
	assert.Equal(t, "../../", variants[0])
	assert.Equal(t, "..\\..\\", variants[1])
	assert.Equal(t, "..%2f..%2f", variants[2])
	assert.Equal(t, "..%c0%af..%c0%af", variants[11])
	assert.Equal(t, "..%c1%9c..%c1%9c", variants[12])
}

func TestPathTraversalVariantsZeroDepth(t *testing.T) {
	variants := encoder.PathTraversalVariants(0)
	for _, v := range variants {
		assert.Empty(t, v)
	}
}
