package filter

import "github.com/nvr-ai/go-raster/images"

// ResizeNearest scales input to size by nearest-neighbor sampling.
//
// Arguments:
//   - input: The source raster.
//   - size: The target width and height.
//
// Returns:
//   - *images.Buffer[T]: A new raster of the requested size. An empty
//     input yields a zero valued raster.
func ResizeNearest[T any](input images.Raster[T], size images.Size) *images.Buffer[T] {
	output := images.NewBuffer[T](size)
	in := input.Size()
	if in.Area() == 0 {
		return output
	}

	xs := scaleIndexTable(in.Width, size.Width)
	ys := scaleIndexTable(in.Height, size.Height)

	for y := 0; y < size.Height; y++ {
		src := input.Line(ys[y])
		dst := output.MutableLine(y)
		for x := range dst {
			dst[x] = src[xs[x]]
		}
	}
	return output
}

// scaleIndexTable maps every target index to the source index it samples.
func scaleIndexTable(source, target int) []int {
	table := make([]int, target)
	for i := range table {
		table[i] = i * source / target
	}
	return table
}
