// Package obs sets up structured logging for httpforge, grounded on the
// corpus's zap+lumberjack pattern: a console or JSON encoder over stdout,
// or a rotating file sink when one is configured.
package obs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nullbyte-labs/httpforge/internal/config"
)

func toZapLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a *zap.Logger from the logging section of a loaded config: a
// rotating file sink via lumberjack when File is set, otherwise stdout;
// JSON or human-readable console encoding per the JSON flag.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if cfg.JSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writer zapcore.WriteSyncer
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		writer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
			LocalTime:  false,
		})
	} else {
		writer = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(encoder, writer, toZapLevel(cfg.Level))
	return zap.New(core, zap.AddCaller()), nil
}

// NewNop returns a logger that discards everything, for callers (library
// consumers, tests) that want httpforge's internals to run silently.
func NewNop() *zap.Logger { return zap.NewNop() }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
