package meshsplit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator"
)

// PaletteConfig is the on-disk palette description accepted by the CLI:
//
//	{"colors": [{"name": "WHITE", "rgb": [255, 255, 255]}, ...]}
//
// Color order in the file defines palette order.
type PaletteConfig struct {
	Colors []PaletteColorConfig `json:"colors" validate:"required,min=1,dive"`
}

type PaletteColorConfig struct {
	Name string `json:"name" validate:"required"`
	RGB  []int  `json:"rgb" validate:"required,len=3,dive,min=0,max=255"`
}

// Palette validates the config and converts it into an ordered palette.
func (c *PaletteConfig) Palette() (Palette, error) {
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}
	colors := make([]PaletteColor, 0, len(c.Colors))
	for _, cc := range c.Colors {
		colors = append(colors, PaletteColor{
			Name: cc.Name,
			RGB:  [3]byte{byte(cc.RGB[0]), byte(cc.RGB[1]), byte(cc.RGB[2])},
		})
	}
	return NewPalette(colors...)
}

// LoadPaletteFile reads and validates a JSON palette file.
func LoadPaletteFile(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg PaletteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse palette %s: %w", path, err)
	}
	return cfg.Palette()
}
