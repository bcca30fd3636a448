package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestYAML(t *testing.T) {
	// given
	dir := t.TempDir()
	config := filepath.Join(dir, "texload.yaml")
	content := "workers: 3\nlog_level: debug\nconvert:\n  format: tga\n  rle: true\n"
	if err := os.WriteFile(config, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	tests := []struct {
		name   string
		args   []string
		format string
	}{
		{"from config", []string{"convert", "--scan", dir}, "tga"},
		{"flag wins", []string{"convert", "--scan", dir, "--format", "bmp"}, "bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c cli
			parser, err := kong.New(&c, kong.Configuration(YAML, config))
			if err != nil {
				t.Fatalf("failed to create parser: %v", err)
			}

			// when
			kctx, err := parser.Parse(tt.args)

			// then
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if kctx.Command() != "convert" {
				t.Fatalf("invalid command: %q", kctx.Command())
			}
			if c.Workers != 3 || c.LogLevel != "debug" {
				t.Fatalf("global flags not resolved: workers=%d level=%q", c.Workers, c.LogLevel)
			}
			if c.Convert.Format != tt.format || !c.Convert.RLE {
				t.Fatalf("command flags not resolved: format=%q rle=%v", c.Convert.Format, c.Convert.RLE)
			}
		})
	}
}

func TestYAMLEmpty(t *testing.T) {
	r, err := YAML(strings.NewReader(""))
	if err != nil || r == nil {
		t.Fatalf("expected resolver for empty document, actual %v, %v", r, err)
	}
}

func TestYAMLInvalid(t *testing.T) {
	if _, err := YAML(strings.NewReader("workers: [1")); err == nil {
		t.Fatalf("expected error for invalid document")
	}
}

func TestNewLogger(t *testing.T) {
	logger := newLogger("warn")
	if logger.Handler().Enabled(t.Context(), slog.LevelDebug) {
		t.Fatalf("debug enabled at warn level")
	}
	if !newLogger("bogus").Handler().Enabled(t.Context(), slog.LevelInfo) {
		t.Fatalf("info disabled for unknown level")
	}
}
