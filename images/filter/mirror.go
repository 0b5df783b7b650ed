package filter

import "github.com/nvr-ai/go-raster/images"

// MirrorHorizontal returns a copy of input flipped left to right.
func MirrorHorizontal[T any](input images.Raster[T]) *images.Buffer[T] {
	output := images.NewBufferLike[T](input)
	size := input.Size()

	for y := 0; y < size.Height; y++ {
		src := input.Line(y)
		dst := output.MutableLine(y)
		last := size.Width - 1
		for x := 0; x < size.Width; x++ {
			dst[x] = src[last-x]
		}
	}
	return output
}

// MirrorVertical returns a copy of input flipped top to bottom.
func MirrorVertical[T any](input images.Raster[T]) *images.Buffer[T] {
	output := images.NewBufferLike[T](input)
	size := input.Size()

	for y := 0; y < size.Height; y++ {
		copy(output.MutableLine(size.Height-1-y), input.Line(y)[:size.Width])
	}
	return output
}
