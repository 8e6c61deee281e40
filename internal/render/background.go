package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseBackground parses a background policy. An empty value or "none" keeps
// the sheet transparent and returns nil. "white" and "black" are accepted as
// names; anything else must be a #rrggbb or #rgb hex color.
func ParseBackground(s string) (color.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "transparent":
		return nil, nil
	case "white":
		return color.White, nil
	case "black":
		return color.Black, nil
	}

	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid background color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Flatten composites img over an opaque background and returns the result.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}
