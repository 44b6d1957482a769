package theme

import (
	"image/color"
)

// Theme defines the colours of the drawing surface and its toolbar.
type Theme struct {
	Name string

	// Surface
	Background  color.RGBA // Behind everything
	Grid        color.RGBA // Grid lines
	Selection   color.RGBA // Outline of the selected shape
	Handle      color.RGBA // Transform handles
	Provisional color.RGBA // Tint for the entity being drawn

	// Toolbar
	Toolbar     color.RGBA
	ToolbarText color.RGBA
	ToolActive  color.RGBA // Highlight behind the active tool
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:        "Default",
		Background:  color.RGBA{255, 255, 255, 255},
		Grid:        color.RGBA{235, 235, 235, 255},
		Selection:   color.RGBA{0, 120, 215, 255},
		Handle:      color.RGBA{255, 255, 255, 255},
		Provisional: color.RGBA{0, 0, 0, 128},
		Toolbar:     color.RGBA{220, 220, 220, 255},
		ToolbarText: color.RGBA{0, 0, 0, 255},
		ToolActive:  color.RGBA{150, 150, 150, 255},
	}
}
