package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultTuning(t *testing.T) {
	tu := DefaultTuning()
	if err := tu.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	sc := tu.Ship()
	if sc.ShadeDuration != 500*time.Millisecond || sc.SolDuration != 2*time.Second {
		t.Fatalf("durations = %v / %v", sc.ShadeDuration, sc.SolDuration)
	}
	if sc.MoveSpeed != 12 || sc.TurnSpeed != 3 {
		t.Fatalf("speeds = %v / %v", sc.MoveSpeed, sc.TurnSpeed)
	}
	if tu.Step() != 20*time.Millisecond {
		t.Fatalf("Step = %v", tu.Step())
	}
}

func TestParseTuningOverrides(t *testing.T) {
	tu, err := ParseTuning([]byte("sol_duration: 3.5\nmove_speed: 20\n"))
	if err != nil {
		t.Fatalf("ParseTuning: %v", err)
	}
	if tu.SolDuration != 3.5 || tu.MoveSpeed != 20 {
		t.Fatalf("overrides not applied: %+v", tu)
	}
	if tu.ShadeDuration != 0.5 {
		t.Fatalf("unset fields should keep defaults")
	}
}

func TestParseTuningErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "move_speed: [1"},
		{"zero step", "fixed_step: 0"},
		{"damping too high", "damping: 2"},
		{"negative duration", "shade_duration: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTuning([]byte(tt.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadTuning(t *testing.T) {
	tu, err := LoadTuning("")
	if err != nil || tu != DefaultTuning() {
		t.Fatalf("empty path should return defaults")
	}

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("turn_speed: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tu, err = LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tu.TurnSpeed != 5 {
		t.Fatalf("TurnSpeed = %v", tu.TurnSpeed)
	}

	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file should fail")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SHADESTEP_TEST_KEY", "value")
	if GetEnv("SHADESTEP_TEST_KEY", "x") != "value" {
		t.Fatalf("GetEnv ignored set variable")
	}
	if GetEnv("SHADESTEP_TEST_MISSING", "fallback") != "fallback" {
		t.Fatalf("GetEnv ignored fallback")
	}

	t.Setenv(EnvBell, "true")
	if !GetEnvBool(EnvBell, false) {
		t.Fatalf("GetEnvBool should parse true")
	}
	t.Setenv(EnvBell, "nope")
	if GetEnvBool(EnvBell, false) {
		t.Fatalf("malformed bool should use fallback")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SHADESTEP_DOTENV_KEY=from-file\nSHADESTEP_DOTENV_SET=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHADESTEP_DOTENV_SET", "from-env")
	t.Cleanup(func() { os.Unsetenv("SHADESTEP_DOTENV_KEY") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if os.Getenv("SHADESTEP_DOTENV_KEY") != "from-file" {
		t.Fatalf(".env value not loaded")
	}
	if os.Getenv("SHADESTEP_DOTENV_SET") != "from-env" {
		t.Fatalf(".env must not override the environment")
	}
	if err := LoadDotEnv(filepath.Join(dir, "absent.env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("level filtering wrong: %q", out)
	}

	buf.Reset()
	NewLogger(&buf, "bogus").Info("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("unknown level should default to info")
	}
}
