// Package filter - Per-pixel raster transforms: map, update, mirror and
// nearest-neighbor resize.
package filter

import (
	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
)

// MapRegion combines pixels of input within inputRegion with the pixels of
// output within outputRegion, writing the result to output.
//
// Pixels outside either raster are ignored: the regions are reduced to
// their equally sized, in-bounds overlap first.
//
// Arguments:
//   - input: The read-only source raster.
//   - output: The destination raster.
//   - inputRegion: The source pixel region.
//   - outputRegion: The destination pixel region.
//   - op: Maps an input and the current output value to the new output
//     value, e.g. func(x, _ int8) int8 { return -x }.
func MapRegion[TI, TO any](
	input images.Raster[TI],
	output images.MutableRaster[TO],
	inputRegion, outputRegion geometry.Region,
	op func(TI, TO) TO,
) {
	mapping := geometry.NewMapping(inputRegion, outputRegion, images.Bounds(input), images.Bounds[TO](output))
	if mapping.Empty() {
		return
	}

	for line := 0; line < mapping.Src.Height(); line++ {
		src := input.Line(mapping.Src.Y.Start + line)[mapping.Src.X.Start:mapping.Src.X.End]
		dst := output.MutableLine(mapping.Dst.Y.Start + line)[mapping.Dst.X.Start:mapping.Dst.X.End]

		for x := range dst {
			dst[x] = op(src[x], dst[x])
		}
	}
}

// Map combines every pixel of input with the pixel at the same position in
// output.
func Map[TI, TO any](input images.Raster[TI], output images.MutableRaster[TO], op func(TI, TO) TO) {
	MapRegion(input, output, images.Bounds(input), images.Bounds[TO](output), op)
}

// MapNew returns a new raster of the size of input holding op applied to
// every input pixel.
func MapNew[TI, TO any](input images.Raster[TI], op func(TI) TO) *images.Buffer[TO] {
	output := images.NewBufferLike[TO](input)
	Map[TI, TO](input, output, func(x TI, _ TO) TO { return op(x) })
	return output
}

// Convert returns a copy of input with every pixel converted to TO, e.g.
// to widen 8-bit pixels before accumulating a convolution.
func Convert[TO, TI images.Number](input images.Raster[TI]) *images.Buffer[TO] {
	return MapNew(input, func(x TI) TO { return TO(x) })
}
