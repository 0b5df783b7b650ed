package kernels

import (
	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
)

// Horizontal filters every line of input into output.
//
// The input is treated as infinite, replicating the values of the nearest
// existing pixels. Input and output must be different rasters.
//
// Example:
//
//	input := images.MustFromSlice(images.NewSize(3, 2), []int8{
//	    1, 2, 0,
//	    3, 4, 0,
//	})
//	output := images.NewBufferLike[int8](input)
//	err := kernels.Horizontal[int8](input, output, []int8{0, 0, -1}, kernels.Convolution[int8])
//	// output: -1 -1 -2
//	//         -3 -3 -4
func Horizontal[T any](
	input images.Raster[T],
	output images.MutableRaster[T],
	kernel []T,
	op Operator[T],
) error {
	return HorizontalRegion(input, output, kernel, images.Bounds(input), images.Bounds[T](output), op)
}

// HorizontalRegion filters the lines of input within inputRegion into
// outputRegion of output.
//
// Arguments:
//   - input: The read-only source raster.
//   - output: The destination raster. It must not alias input.
//   - kernel: Filter coefficients. Must contain an odd number of taps.
//   - inputRegion: The source pixels to filter.
//   - outputRegion: Where the result goes. Its origin sets the shift
//     between the rasters; both regions are clipped to the overlap.
//   - op: How a tap combines into the output, e.g. Convolution.
//
// Returns:
//   - error: ErrEvenKernel (wrapped) before any pixel is written. Regions
//     that do not overlap are a no-op, not an error.
func HorizontalRegion[T any](
	input images.Raster[T],
	output images.MutableRaster[T],
	kernel []T,
	inputRegion, outputRegion geometry.Region,
	op Operator[T],
) error {
	if err := ValidateKernel(len(kernel)); err != nil {
		return err
	}

	mapping := geometry.NewMapping(inputRegion, outputRegion, images.Bounds(input), images.Bounds[T](output))
	if mapping.Empty() {
		images.Logger().Debug("horizontal filter skipped, regions do not overlap",
			"input", inputRegion, "output", outputRegion)
		return nil
	}

	width := input.Size().Width
	plan, err := NewPlan(width, len(kernel), mapping.Src.X, mapping.Dst.X)
	if err != nil {
		return err
	}
	images.Logger().Debug("horizontal filter",
		"src", mapping.Src, "dst", mapping.Dst, "taps", len(plan))

	left, right := mapping.Dst.X.Start, mapping.Dst.X.End

	for y := mapping.Src.Y.Start; y < mapping.Src.Y.End; y++ {
		src := input.Line(y)
		dst := output.MutableLine(y + mapping.Shift.Y)

		for _, step := range plan {
			k := kernel[step.KernelIndex]

			// Pixels before the start of the line replicate the first pixel.
			for i := 0; i < step.OutsideStart; i++ {
				op(src[:1], dst[left+i:left+i+1], k)
			}

			if !step.Src.Empty() {
				op(src[step.Src.Start:step.Src.End], dst[step.Dst.Start:step.Dst.End], k)
			}

			// Pixels past the end of the line replicate the last pixel.
			for i := 0; i < step.OutsideEnd; i++ {
				x := right - i - 1
				op(src[width-1:width], dst[x:x+1], k)
			}
		}
	}
	return nil
}
