// Package images - Raster contracts and in-memory pixel buffers.
package images

import (
	"golang.org/x/exp/constraints"

	"github.com/nvr-ai/go-raster/geometry"
)

// Number is the set of pixel types that support the arithmetic used by
// the convolution operators.
type Number interface {
	constraints.Integer | constraints.Float
}

// Size is the width and height of a raster in pixels.
type Size struct {
	// The width of the raster.
	Width int `json:"width" yaml:"width"`
	// The height of the raster.
	Height int `json:"height" yaml:"height"`
}

// NewSize returns a Size of width x height.
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Area returns the number of pixels covered by the size.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Region returns the region covered by a raster of this size.
func (s Size) Region() geometry.Region {
	return geometry.RegionOf(s.Width, s.Height)
}

// Raster provides read-only line access to a 2D grid of pixels.
//
// Every line is stored as a contiguous slice; lines themselves may be laid
// out arbitrarily. Line panics when y is outside [0, Size().Height).
type Raster[T any] interface {
	// Size returns the width and height of the raster.
	Size() Size
	// Line returns the pixels of line y. The slice holds at least
	// Size().Width elements and must not be modified.
	Line(y int) []T
}

// MutableRaster extends Raster with write access to individual lines.
type MutableRaster[T any] interface {
	Raster[T]
	// MutableLine returns line y for writing, with the same bounds
	// contract as Line.
	MutableLine(y int) []T
}

// Bounds returns the full region of r.
func Bounds[T any](r Raster[T]) geometry.Region {
	return r.Size().Region()
}

// Equal reports whether two rasters have the same size and pixels. Padding
// beyond the width of each line is ignored.
func Equal[T comparable](a, b Raster[T]) bool {
	if a.Size() != b.Size() {
		return false
	}
	size := a.Size()
	for y := 0; y < size.Height; y++ {
		la, lb := a.Line(y)[:size.Width], b.Line(y)[:size.Width]
		for x := range la {
			if la[x] != lb[x] {
				return false
			}
		}
	}
	return true
}
