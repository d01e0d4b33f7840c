package obs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, toZapLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, toZapLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, toZapLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, toZapLevel("ERROR"))
	assert.Equal(t, zapcore.InfoLevel, toZapLevel(""))
	assert.Equal(t, zapcore.InfoLevel, toZapLevel("nonsense"))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 5, orDefault(5, 100))
	assert.Equal(t, 100, orDefault(0, 100))
	assert.Equal(t, 100, orDefault(-1, 100))
}
