// Package theme defines the color palettes for the review window.
package theme

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Theme defines the colors of the review window and crop overlay.
type Theme struct {
	Name string

	// Bars
	BarBackground color.RGBA // Status and caption bar background
	BarText       color.RGBA

	// Crop overlay
	Outline       color.RGBA // Crop rectangle outline
	OutlineAccent color.RGBA // Second color of the dashed outline
	HandleFill    color.RGBA
	HandleBorder  color.RGBA

	// Canvas backdrop behind the photo
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the light theme with the classic lime crop outline.
func Default() *Theme {
	return &Theme{
		Name:          "default",
		BarBackground: color.RGBA{220, 220, 220, 255},
		BarText:       color.RGBA{0, 0, 0, 255},
		Outline:       color.RGBA{0, 255, 0, 255},
		OutlineAccent: color.RGBA{0, 0, 0, 255},
		HandleFill:    color.RGBA{0, 255, 0, 255},
		HandleBorder:  color.RGBA{0, 0, 0, 255},
		CheckerLight:  color.RGBA{220, 220, 220, 255},
		CheckerDark:   color.RGBA{192, 192, 192, 255},
	}
}

// Dark returns a dark palette suited to long review sessions.
func Dark() *Theme {
	return &Theme{
		Name:          "dark",
		BarBackground: color.RGBA{40, 40, 40, 255},
		BarText:       color.RGBA{230, 230, 230, 255},
		Outline:       color.RGBA{0, 220, 130, 255},
		OutlineAccent: color.RGBA{20, 20, 20, 255},
		HandleFill:    color.RGBA{0, 220, 130, 255},
		HandleBorder:  color.RGBA{230, 230, 230, 255},
		CheckerLight:  color.RGBA{56, 56, 56, 255},
		CheckerDark:   color.RGBA{40, 40, 40, 255},
	}
}

// HighContrast returns a palette for maximum overlay visibility.
func HighContrast() *Theme {
	return &Theme{
		Name:          "high_contrast",
		BarBackground: color.RGBA{0, 0, 0, 255},
		BarText:       color.RGBA{255, 255, 255, 255},
		Outline:       color.RGBA{255, 0, 255, 255},
		OutlineAccent: color.RGBA{255, 255, 0, 255},
		HandleFill:    color.RGBA{255, 255, 255, 255},
		HandleBorder:  color.RGBA{0, 0, 0, 255},
		CheckerLight:  color.RGBA{255, 255, 255, 255},
		CheckerDark:   color.RGBA{0, 0, 0, 255},
	}
}

var builtins = map[string]func() *Theme{
	"default":       Default,
	"dark":          Dark,
	"high_contrast": HighContrast,
}

// Load resolves a theme by name. An empty name returns the default theme.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default(), nil
	}
	if fn, ok := builtins[name]; ok {
		return fn(), nil
	}
	return nil, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
