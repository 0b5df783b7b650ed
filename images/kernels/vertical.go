package kernels

import (
	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
)

// Vertical filters every column of input into output. It is the
// transposed counterpart of Horizontal.
func Vertical[T any](
	input images.Raster[T],
	output images.MutableRaster[T],
	kernel []T,
	op Operator[T],
) error {
	return VerticalRegion(input, output, kernel, images.Bounds(input), images.Bounds[T](output), op)
}

// VerticalRegion filters the columns of input within inputRegion into
// outputRegion of output. See HorizontalRegion for the argument contract.
//
// Columns are processed a line band at a time: every tap combines a whole
// run of columns from one source line into one destination line.
func VerticalRegion[T any](
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
		images.Logger().Debug("vertical filter skipped, regions do not overlap",
			"input", inputRegion, "output", outputRegion)
		return nil
	}

	height := input.Size().Height
	plan, err := NewPlan(height, len(kernel), mapping.Src.Y, mapping.Dst.Y)
	if err != nil {
		return err
	}
	images.Logger().Debug("vertical filter",
		"src", mapping.Src, "dst", mapping.Dst, "taps", len(plan))

	srcCols, dstCols := mapping.Src.X, mapping.Dst.X
	top, bottom := mapping.Dst.Y.Start, mapping.Dst.Y.End

	columns := func(line []T, r geometry.Range) []T {
		return line[r.Start:r.End]
	}

	for _, step := range plan {
		k := kernel[step.KernelIndex]

		// Lines above the raster replicate the first line.
		for i := 0; i < step.OutsideStart; i++ {
			op(columns(input.Line(0), srcCols), columns(output.MutableLine(top+i), dstCols), k)
		}

		for i := 0; i < step.Src.Len(); i++ {
			op(
				columns(input.Line(step.Src.Start+i), srcCols),
				columns(output.MutableLine(step.Dst.Start+i), dstCols),
				k,
			)
		}

		// Lines below the raster replicate the last line.
		for i := 0; i < step.OutsideEnd; i++ {
			op(columns(input.Line(height-1), srcCols), columns(output.MutableLine(bottom-i-1), dstCols), k)
		}
	}
	return nil
}
