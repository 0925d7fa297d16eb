package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ex "cryptoforecast/data/extensions"
)

// Logger bundles the zap logger with the log file it writes to.
// Close must be called once at exit to flush and release the file.
type Logger struct {
	*zap.Logger
	Path string
	file *os.File
}

// LogPath is the dated run log, {dir}/crypto_{YYYY-MM-DD}.log
func LogPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("crypto_%s.log", ex.FmtShort(now)))
}

// New opens (appending) the dated log file under dir and tees every entry to it and to console.
func New(dir string, now time.Time, console io.Writer) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating log directory %s: %w", dir, err)
	}

	path := LogPath(dir, now)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %s: %w", path, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(file), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(console)), zap.InfoLevel),
	)

	return &Logger{
		Logger: zap.New(core),
		Path:   path,
		file:   file,
	}, nil
}

func (l *Logger) Close() error {
	// stdout Sync returns EINVAL on some platforms, only the file matters
	_ = l.Logger.Sync()
	return l.file.Close()
}
