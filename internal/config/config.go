// Package config loads the tool settings from settings.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Notify holds desktop notification toggles.
type Notify struct {
	Save  bool `yaml:"save"`
	Batch bool `yaml:"batch"`
}

// Ollama holds the connection settings for the vision and caption models.
type Ollama struct {
	URL          string `yaml:"url"`
	VisionModel  string `yaml:"vision_model"`
	CaptionModel string `yaml:"caption_model"`
	Suggest      bool   `yaml:"suggest"`
	Caption      bool   `yaml:"caption"`
	PadPx        int    `yaml:"pad_px"`
}

// Settings holds the application configuration.
type Settings struct {
	InputFolder  string `yaml:"input_folder"`
	OutputFolder string `yaml:"output_folder"`
	CropSize     int    `yaml:"crop_size"`
	MinSide      int    `yaml:"min_side"`
	GlobalTags   string `yaml:"global_tags"`
	Theme        string `yaml:"theme"`
	Notify       Notify `yaml:"notify"`
	Ollama       Ollama `yaml:"ollama"`
}

// Default returns settings matching a fresh install.
func Default() *Settings {
	return &Settings{
		InputFolder:  "./input",
		OutputFolder: "./output",
		CropSize:     512,
		MinSide:      10,
		GlobalTags:   "",
		Theme:        "",
		Ollama: Ollama{
			URL:          "http://127.0.0.1:11434",
			VisionModel:  "llava",
			CaptionModel: "llava",
			PadPx:        300,
		},
	}
}

// Parse reads YAML settings over the defaults.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	s.InputFolder = ExpandHome(s.InputFolder)
	s.OutputFolder = ExpandHome(s.OutputFolder)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings against hard limits.
func (s *Settings) Validate() error {
	if s.CropSize < 1 {
		return fmt.Errorf("crop_size must be positive, got %d", s.CropSize)
	}
	if s.MinSide < 1 {
		return fmt.Errorf("min_side must be positive, got %d", s.MinSide)
	}
	if s.Ollama.PadPx < 0 {
		return fmt.Errorf("ollama.pad_px must not be negative, got %d", s.Ollama.PadPx)
	}
	if strings.TrimSpace(s.InputFolder) == "" {
		return fmt.Errorf("input_folder must not be empty")
	}
	if strings.TrimSpace(s.OutputFolder) == "" {
		return fmt.Errorf("output_folder must not be empty")
	}
	return nil
}

// String implements fmt.Stringer and renders the settings as YAML.
func (s *Settings) String() string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("settings: %v", err)
	}
	return string(out)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
