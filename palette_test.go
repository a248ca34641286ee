package meshsplit

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestColorDistance(t *testing.T) {
	tests := []struct {
		name string
		rgb  [3]float64
		ref  [3]byte
		want float64
	}{
		{"identical white", [3]float64{255, 255, 255}, [3]byte{255, 255, 255}, 0},
		{"identical red", [3]float64{210, 30, 45}, [3]byte{210, 30, 45}, 0},
		{"black to white", [3]float64{0, 0, 0}, [3]byte{255, 255, 255}, 200},
		{"green weighting", [3]float64{255, 0, 255}, [3]byte{255, 255, 255}, math.Sqrt(2) * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorDistance(tt.rgb, tt.ref)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected distance %v, got %v", tt.want, got)
			}
		})
	}
}

// The green channel difference must weigh twice as much as red or blue.
func TestColorDistanceGreenWeight(t *testing.T) {
	red := ColorDistance([3]float64{0, 255, 255}, [3]byte{255, 255, 255})
	green := ColorDistance([3]float64{255, 0, 255}, [3]byte{255, 255, 255})
	blue := ColorDistance([3]float64{255, 255, 0}, [3]byte{255, 255, 255})
	if red != blue {
		t.Errorf("Expected equal red and blue weight, got %v and %v", red, blue)
	}
	if math.Abs(green-red*math.Sqrt2) > 1e-9 {
		t.Errorf("Expected green distance %v, got %v", red*math.Sqrt2, green)
	}
}

func TestNewPalette(t *testing.T) {
	tests := []struct {
		name    string
		colors  []PaletteColor
		wantErr bool
	}{
		{"valid", []PaletteColor{{Name: "A", RGB: [3]byte{1, 2, 3}}, {Name: "B"}}, false},
		{"duplicate name", []PaletteColor{{Name: "A"}, {Name: "A"}}, true},
		{"missing name", []PaletteColor{{RGB: [3]byte{1, 2, 3}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPalette(tt.colors...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPalette error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(p) != len(tt.colors) {
				t.Errorf("Expected %d colors, got %d", len(tt.colors), len(p))
			}
		})
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p) != 3 {
		t.Fatalf("Expected 3 colors, got %d", len(p))
	}
	wantOrder := []string{"WHITE", "RED", "BLUE_VISOR"}
	for i, name := range wantOrder {
		if p[i].Name != name {
			t.Errorf("Expected color %d to be %s, got %s", i, name, p[i].Name)
		}
		if p.Index(name) != i {
			t.Errorf("Index(%s) = %d, want %d", name, p.Index(name), i)
		}
	}
	if p.Index("MAGENTA") != -1 {
		t.Errorf("Expected -1 for unknown color, got %d", p.Index("MAGENTA"))
	}
	if got := p[1].RGBA(); got != [4]byte{210, 30, 45, 255} {
		t.Errorf("Expected opaque RED RGBA, got %v", got)
	}
}

func TestPaletteConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PaletteConfig
		wantErr bool
	}{
		{
			"valid",
			PaletteConfig{Colors: []PaletteColorConfig{{Name: "WHITE", RGB: []int{255, 255, 255}}}},
			false,
		},
		{"no colors", PaletteConfig{}, true},
		{
			"channel out of range",
			PaletteConfig{Colors: []PaletteColorConfig{{Name: "X", RGB: []int{0, 300, 0}}}},
			true,
		},
		{
			"wrong channel count",
			PaletteConfig{Colors: []PaletteColorConfig{{Name: "X", RGB: []int{0, 0}}}},
			true,
		},
		{
			"missing name",
			PaletteConfig{Colors: []PaletteColorConfig{{RGB: []int{0, 0, 0}}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Palette()
			if (err != nil) != tt.wantErr {
				t.Errorf("Palette() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")
	body := `{"colors":[{"name":"BODY","rgb":[10,20,30]},{"name":"TRIM","rgb":[200,200,200]}]}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPaletteFile(path)
	if err != nil {
		t.Fatalf("LoadPaletteFile failed: %v", err)
	}
	if len(p) != 2 || p[0].Name != "BODY" || p[1].Name != "TRIM" {
		t.Errorf("Unexpected palette %+v", p)
	}
	if p[0].RGB != [3]byte{10, 20, 30} {
		t.Errorf("Expected RGB [10 20 30], got %v", p[0].RGB)
	}

	if _, err := LoadPaletteFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
