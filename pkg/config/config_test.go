package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err == nil {
		t.Fatal("an explicit missing config file should fail")
	}

	// no explicit file: missing ./mondrian.yaml is fine
	cfg, err = Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("default viewport = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("default log = %+v", cfg.Log)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mondrian.yaml")
	src := "width: 1024\nheight: 768\nfont_dir: /fonts\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("viewport = %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}
	if cfg.FontDir != "/fonts" {
		t.Errorf("font_dir = %q", cfg.FontDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("log.format = %q, want the default", cfg.Log.Format)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mondrian.yaml")
	if err := os.WriteFile(path, []byte("width: 1024\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MONDRIAN_WIDTH", "640")
	t.Setenv("MONDRIAN_LOG_LEVEL", "warn")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 {
		t.Errorf("width = %d, env should override the file", cfg.Width)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn from env", cfg.Log.Level)
	}
}

func TestLoadChangedFlagWins(t *testing.T) {
	t.Setenv("MONDRIAN_WIDTH", "640")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("width", 800, "")
	flags.Int("height", 600, "")
	if err := flags.Parse([]string{"--width", "320"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 {
		t.Errorf("width = %d, a changed flag should win over env", cfg.Width)
	}
	if cfg.Height != 600 {
		t.Errorf("height = %d, unchanged flag should not mask defaults", cfg.Height)
	}
}

func TestLoadRejectsBadViewport(t *testing.T) {
	t.Setenv("MONDRIAN_WIDTH", "0")
	if _, err := Load("", nil); err == nil {
		t.Fatal("zero width should fail")
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(Log{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}

	log, err = NewLogger(Log{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	if _, err := NewLogger(Log{Level: "shouting"}); err == nil {
		t.Error("bad level should fail")
	}
	if _, err := NewLogger(Log{Level: "info", Format: "xml"}); err == nil {
		t.Error("bad format should fail")
	}
}
