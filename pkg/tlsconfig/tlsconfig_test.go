package tlsconfig_test

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbyte-labs/httpforge/pkg/tlsconfig"
)

func TestGetVersionName(t *testing.T) {
	assert.Equal(t, "TLS 1.2", tlsconfig.GetVersionName(tlsconfig.VersionTLS12))
	assert.Equal(t, "TLS 1.3", tlsconfig.GetVersionName(tlsconfig.VersionTLS13))
	assert.Equal(t, "Unknown", tlsconfig.GetVersionName(0x9999))
}

func TestIsVersionDeprecated(t *testing.T) {
	assert.True(t, tlsconfig.IsVersionDeprecated(tlsconfig.VersionTLS10))
	assert.True(t, tlsconfig.IsVersionDeprecated(tlsconfig.VersionTLS11))
	assert.False(t, tlsconfig.IsVersionDeprecated(tlsconfig.VersionTLS12))
	assert.False(t, tlsconfig.IsVersionDeprecated(tlsconfig.VersionTLS13))
}

func TestGetCipherSuiteName(t *testing.T) {
	assert.Equal(t, "TLS_AES_128_GCM_SHA256", tlsconfig.GetCipherSuiteName(tls.TLS_AES_128_GCM_SHA256))
	assert.Equal(t, "Unknown", tlsconfig.GetCipherSuiteName(0xFFFF))
}

func TestProfileByName(t *testing.T) {
	profile, ok := tlsconfig.ProfileByName("legacy")
	assert.True(t, ok)
	assert.Equal(t, tlsconfig.ProfileLegacy, profile)

	_, ok = tlsconfig.ProfileByName("nonexistent")
	assert.False(t, ok)
}

func TestApplyVersionProfileSetsMinMax(t *testing.T) {
	cfg := &tls.Config{}
	tlsconfig.ApplyVersionProfile(cfg, tlsconfig.ProfileSecure)
	assert.Equal(t, tlsconfig.VersionTLS12, cfg.MinVersion)
	assert.Equal(t, tlsconfig.VersionTLS13, cfg.MaxVersion)
}

func TestApplyCipherSuitesPicksByMinVersion(t *testing.T) {
	tls13 := &tls.Config{}
	tlsconfig.ApplyCipherSuites(tls13, tlsconfig.VersionTLS13)
	assert.Nil(t, tls13.CipherSuites)

	tls12 := &tls.Config{}
	tlsconfig.ApplyCipherSuites(tls12, tlsconfig.VersionTLS12)
	assert.Equal(t, tlsconfig.CipherSuitesTLS12Secure, tls12.CipherSuites)

	tls10 := &tls.Config{}
	tlsconfig.ApplyCipherSuites(tls10, tlsconfig.VersionTLS10)
	assert.Equal(t, tlsconfig.CipherSuitesTLS12Compatible, tls10.CipherSuites)

	legacy := &tls.Config{}
	tlsconfig.ApplyCipherSuites(legacy, tlsconfig.VersionSSL30)
	assert.Equal(t, tlsconfig.CipherSuitesLegacy, legacy.CipherSuites)
}
