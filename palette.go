package meshsplit

import (
	"fmt"
	"math"
)

// PaletteColor is a named reference color used as a classification target.
type PaletteColor struct {
	Name string
	RGB  [3]byte
}

// RGBA returns the reference color as an opaque RGBA value.
func (c PaletteColor) RGBA() [4]byte {
	return [4]byte{c.RGB[0], c.RGB[1], c.RGB[2], 255}
}

// Palette is a fixed, ordered set of reference colors. The order is
// significant: it drives the order of the partitioned sub-meshes and the
// material table of the 3MF renderer, and stays stable across a run.
type Palette []PaletteColor

// NewPalette builds a palette from the given colors, rejecting empty and
// duplicate names.
func NewPalette(colors ...PaletteColor) (Palette, error) {
	seen := make(map[string]bool, len(colors))
	for _, c := range colors {
		if c.Name == "" {
			return nil, fmt.Errorf("palette color %v has no name", c.RGB)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate palette color %q", c.Name)
		}
		seen[c.Name] = true
	}
	return Palette(colors), nil
}

// DefaultPalette returns the built-in three color astronaut palette.
func DefaultPalette() Palette {
	return Palette{
		{Name: "WHITE", RGB: [3]byte{255, 255, 255}},
		{Name: "RED", RGB: [3]byte{210, 30, 45}},       // gloves and boots
		{Name: "BLUE_VISOR", RGB: [3]byte{25, 30, 70}}, // visor
	}
}

// Index returns the position of the named color, or -1.
func (p Palette) Index(name string) int {
	for i := range p {
		if p[i].Name == name {
			return i
		}
	}
	return -1
}

// ColorDistance is the perceptual distance between an observed RGB color
// and a palette reference. Channels are normalized to [0,1] and the green
// difference is double weighted, since the eye is most sensitive to green.
// The result is scaled to be comparable with delta_e_cie2000 values, so a
// distance below ~10 means the colors are very similar.
func ColorDistance(rgb [3]float64, ref [3]byte) float64 {
	dr := rgb[0]/255 - float64(ref[0])/255
	dg := rgb[1]/255 - float64(ref[1])/255
	db := rgb[2]/255 - float64(ref[2])/255
	return math.Sqrt(dr*dr+2*dg*dg+db*db) * 100
}
