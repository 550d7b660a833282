package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/mazznoer/colorgrad"
)

const paletteSize = 255

var gradients = map[string]func() colorgrad.Gradient{
	"viridis": colorgrad.Viridis,
	"inferno": colorgrad.Inferno,
	"magma":   colorgrad.Magma,
	"turbo":   colorgrad.Turbo,
	"rdbu":    colorgrad.RdBu,
}

// Palette is a sampled gradient plus one extra entry for overlays, so the
// whole set fits a GIF colour table.
type Palette struct {
	Name   string
	Colors color.Palette
}

// overlay is the palette index used by DrawArrows.
const overlay = paletteSize

func NewPalette(name string) (*Palette, error) {
	mk, ok := gradients[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	colors := make(color.Palette, 0, paletteSize+1)
	for _, c := range mk().Colors(paletteSize) {
		colors = append(colors, c)
	}
	colors = append(colors, color.White)
	return &Palette{Name: name, Colors: colors}, nil
}

// PaletteNames lists the available gradients, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(gradients))
	for name := range gradients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Index maps t in [0, 1] to a gradient entry; values outside are clamped.
func (p *Palette) Index(t float64) uint8 {
	if !(t > 0) {
		return 0
	}
	if t >= 1 {
		return paletteSize - 1
	}
	return uint8(t * (paletteSize - 1))
}

// Hex returns the #rrggbb form of entry i.
func (p *Palette) Hex(i uint8) string {
	r, g, b, _ := p.Colors[i].RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
