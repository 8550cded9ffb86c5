package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNopBeforeInit(t *testing.T) {
	// The package-level logger must be usable without Init.
	Debug("ignored", zap.Int("crab", 1))
	Named("composer").Info("ignored")
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{`"level":"error"`},
			excluded: []string{`"level":"warn"`, `"level":"info"`, `"level":"debug"`},
		},
		{
			level:    "warn",
			expected: []string{`"level":"error"`, `"level":"warn"`},
			excluded: []string{`"level":"info"`, `"level":"debug"`},
		},
		{
			level:    "info",
			expected: []string{`"level":"error"`, `"level":"warn"`, `"level":"info"`},
			excluded: []string{`"level":"debug"`},
		},
		{
			level:    "debug",
			expected: []string{`"level":"error"`, `"level":"warn"`, `"level":"info"`, `"level":"debug"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			cfg := FileConfig{
				Path:       logFile,
				MaxSizeMB:  10,
				MaxBackups: 1,
				MaxAgeDays: 1,
				Compress:   false,
			}

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}

			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}

			for _, exc := range tt.excluded {
				if strings.Contains(logContent, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestStructuredFields(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "fields.log")
	if err := InitWithFileConfig("debug", DefaultFileConfig(logFile), false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Named("colony").Info("crab generated", zap.Int64("seed", 1000), zap.String("phase", "claws"))
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]any
	line := strings.TrimSpace(strings.Split(string(content), "\n")[0])
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	if entry["logger"] != "colony" {
		t.Errorf("logger = %v, want colony", entry["logger"])
	}
	if entry["seed"] != float64(1000) {
		t.Errorf("seed = %v, want 1000", entry["seed"])
	}
	if entry["phase"] != "claws" {
		t.Errorf("phase = %v, want claws", entry["phase"])
	}
}

func TestCallerLocation(t *testing.T) {
	prevLog, prevSugar := Log, Sugar
	t.Cleanup(func() { Log, Sugar = prevLog, prevSugar })

	core, logs := observer.New(zapcore.DebugLevel)
	setCore(core)

	Info("helper")
	Named("colony").Info("direct")
	Sugar.Infof("sugared %d", 1)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if !e.Caller.Defined {
			t.Errorf("%q: caller not recorded", e.Message)
			continue
		}
		if got := filepath.Base(e.Caller.File); got != "logger_test.go" {
			t.Errorf("%q: caller = %s, want logger_test.go", e.Message, e.Caller.TrimmedPath())
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/crabgen.log")

	if cfg.Path != "/tmp/crabgen.log" {
		t.Errorf("expected path /tmp/crabgen.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 14 {
		t.Errorf("expected MaxAgeDays 14, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
