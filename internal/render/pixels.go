// Package render turns grids into images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"split-ca/internal/core"
)

// Binary draws lit cells as on and the rest as off, scaling each cell to a
// square of scale pixels.
func Binary(g *core.Grid, on, off color.Color, scale int) *image.RGBA {
	return paint(g, scale, func(v uint8) color.Color {
		if core.IsAlive(v) {
			return on
		}
		return off
	})
}

// Gray draws cell values as gray levels.
func Gray(g *core.Grid, scale int) *image.RGBA {
	return paint(g, scale, func(v uint8) color.Color { return color.Gray{Y: v} })
}

func paint(g *core.Grid, scale int, shade func(uint8) color.Color) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w, h := g.Width(), g.Height()
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBAModel.Convert(shade(g.Get(x, y))).(color.RGBA)
			for sy := 0; sy < scale; sy++ {
				base := img.PixOffset(x*scale, y*scale+sy)
				for sx := 0; sx < scale; sx++ {
					i := base + sx*4
					img.Pix[i+0] = c.R
					img.Pix[i+1] = c.G
					img.Pix[i+2] = c.B
					img.Pix[i+3] = c.A
				}
			}
		}
	}
	return img
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}
