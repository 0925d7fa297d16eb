package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	ex "cryptoforecast/data/extensions"
)

func TestLogPathIsDated(t *testing.T) {
	now := time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC)
	ex.AssertAreEqual(t, "path", filepath.Join("out", "crypto_2025-03-07.log"), LogPath("out", now))
}

func TestNewWritesToFileAndConsole(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	var console bytes.Buffer

	logger, err := New(dir, time.Now(), &console)
	if err != nil {
		t.Fatalf("error creating logger: %s", err)
	}

	logger.Info("Extracting historical data", zap.String("symbol", "BTC"))
	logger.Debug("not written at info level")

	if err := logger.Close(); err != nil {
		t.Fatalf("error closing logger: %s", err)
	}

	content, err := os.ReadFile(logger.Path)
	if err != nil {
		t.Fatalf("error reading log file: %s", err)
	}

	for name, out := range map[string]string{"file": string(content), "console": console.String()} {
		if !strings.Contains(out, "INFO") || !strings.Contains(out, `"symbol": "BTC"`) {
			t.Errorf("%s output missing entry: %q", name, out)
		}
		if strings.Contains(out, "not written") {
			t.Errorf("%s output contains debug entry", name)
		}
	}
}
