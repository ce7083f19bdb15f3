package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
input_folder: /data/photos
output_folder: /data/crops
crop_size: 768
global_tags: photo of someone
theme: dark

notify:
  save: true

ollama:
  url: http://gpu-box:11434
  vision_model: minicpm-v
  suggest: true
  pad_px: 120
`
	cfg, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.InputFolder != "/data/photos" {
		t.Errorf("expected input_folder '/data/photos', got %q", cfg.InputFolder)
	}
	if cfg.CropSize != 768 {
		t.Errorf("expected crop_size 768, got %d", cfg.CropSize)
	}
	if cfg.MinSide != 10 {
		t.Errorf("expected default min_side 10, got %d", cfg.MinSide)
	}
	if !cfg.Notify.Save || cfg.Notify.Batch {
		t.Errorf("unexpected notify settings: %+v", cfg.Notify)
	}
	if cfg.Ollama.VisionModel != "minicpm-v" {
		t.Errorf("expected vision_model 'minicpm-v', got %q", cfg.Ollama.VisionModel)
	}
	if cfg.Ollama.CaptionModel != "llava" {
		t.Errorf("expected default caption_model 'llava', got %q", cfg.Ollama.CaptionModel)
	}
	if !cfg.Ollama.Suggest || cfg.Ollama.Caption {
		t.Errorf("unexpected ollama toggles: %+v", cfg.Ollama)
	}
	if cfg.Ollama.PadPx != 120 {
		t.Errorf("expected pad_px 120, got %d", cfg.Ollama.PadPx)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"zero crop size", "crop_size: 0", "crop_size"},
		{"negative min side", "min_side: -3", "min_side"},
		{"negative padding", "ollama:\n  pad_px: -1", "pad_px"},
		{"empty input folder", `input_folder: " "`, "input_folder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	if got := ExpandHome("~/pics"); got != filepath.Join(home, "pics") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got := ExpandHome("/abs/pics"); got != "/abs/pics" {
		t.Errorf("absolute path changed to %q", got)
	}
	if got := ExpandHome("~user/pics"); got != "~user/pics" {
		t.Errorf("foreign user path changed to %q", got)
	}
}

func TestStringRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.GlobalTags = "photo of jonathanzxyz"
	cfg.CropSize = 1024
	parsed, err := Parse([]byte(cfg.String()))
	if err != nil {
		t.Fatalf("Parse of rendered settings failed: %v", err)
	}
	if *parsed != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", parsed, cfg)
	}
}

func TestLoaderFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("CROPTAG_SETTINGS", "")

	l := NewLoader("dev", "")
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoaderPrefersOverridePath(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(override, []byte("crop_size: 256\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	local := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(local, []byte("crop_size: 640\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Chdir(dir)

	l := NewLoader("dev", override)
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CropSize != 256 {
		t.Fatalf("expected override settings, got crop_size %d", cfg.CropSize)
	}
}
