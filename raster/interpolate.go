package raster

import (
	"github.com/chewxy/math32"
)

// bilinearSample samples the image at a fractional coordinate for one
// channel, the shared primitive behind rotation and scaling.
//
// Within one unit of an edge, or outside the bounds entirely, sampling
// degrades to nearest-neighbor with coordinate clamping (edge replication).
// Otherwise the four lattice neighbors are weighted by the fractional
// distances and combined:
//
//	p00·(1-dx)(1-dy) + p10·dx(1-dy) + p01·(1-dx)dy + p11·dx·dy
//
// rounded to nearest and clamped to [0, 255].
func bilinearSample(img *Image, x, y float32, c int) uint8 {
	if x < 0 || y < 0 || x >= float32(img.Width-1) || y >= float32(img.Height-1) {
		xi := clampIndex(int(x+0.5), img.Width)
		yi := clampIndex(int(y+0.5), img.Height)
		return img.At(xi, yi, c)
	}

	x0 := int(math32.Floor(x))
	y0 := int(math32.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1
	dx := x - float32(x0)
	dy := y - float32(y0)

	p00 := float32(img.At(x0, y0, c))
	p10 := float32(img.At(x1, y0, c))
	p01 := float32(img.At(x0, y1, c))
	p11 := float32(img.At(x1, y1, c))

	value := p00*(1-dx)*(1-dy) +
		p10*dx*(1-dy) +
		p01*(1-dx)*dy +
		p11*dx*dy
	return clampU8(int(value + 0.5))
}
