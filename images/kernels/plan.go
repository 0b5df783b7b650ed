// Package kernels applies 1D kernels along raster lines and columns with
// replicated edges, and builds blurs on top of them.
package kernels

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-raster/geometry"
)

// ErrEvenKernel is returned for kernels without a center tap, including
// empty ones.
var ErrEvenKernel = errors.New("kernel must have an odd number of taps")

// Step describes the contribution of a single kernel tap to one line or
// column of the output.
type Step struct {
	// Src is the in-bounds range read from the source line/column.
	Src geometry.Range
	// Dst is the range of the destination line/column that Src is
	// combined into. Src and Dst always have the same length.
	Dst geometry.Range
	// KernelIndex selects the kernel coefficient used by this tap.
	KernelIndex int
	// OutsideStart is the number of leading destination positions whose
	// source falls before the first pixel and replicates it instead.
	OutsideStart int
	// OutsideEnd is the number of trailing destination positions whose
	// source falls past the last pixel and replicates it instead.
	OutsideEnd int
}

// Plan is the ordered list of steps of a 1D filter pass, one per kernel
// tap, ordered by increasing source offset.
type Plan []Step

// ValidateKernel checks that a kernel of the given length has a center tap.
func ValidateKernel(length int) error {
	if length%2 == 0 {
		return errors.Wrapf(ErrEvenKernel, "kernel length %d", length)
	}
	return nil
}

// NewPlan prepares the iteration plan of a 1D filter pass.
//
// Arguments:
//   - length: The line width for a horizontal pass, or the raster height
//     for a vertical pass.
//   - kernelLen: The number of kernel taps. Must be odd.
//   - src: The clipped source interval along the filtered axis.
//   - dst: The destination interval; only its start is used, as the
//     destination has the same length as src.
//
// Returns:
//   - Plan: kernelLen steps. For every step
//     OutsideStart + Src.Len() + OutsideEnd == src.Len().
//   - error: ErrEvenKernel (wrapped) for even kernel lengths.
func NewPlan(length, kernelLen int, src, dst geometry.Range) (Plan, error) {
	if err := ValidateKernel(kernelLen); err != nil {
		return nil, err
	}

	center := (kernelLen - 1) / 2
	shift := dst.Start - src.Start
	plan := make(Plan, 0, kernelLen)

	for pos := -center; pos < kernelLen-center; pos++ {
		plan = append(plan, newStep(pos, shift, center, length, src))
	}
	return plan, nil
}

// newStep builds the step of the tap at offset pos from the center. The
// tap reads source pixel x+pos for destination pixel x, so negative
// offsets use the later kernel coefficients.
func newStep(pos, shift, center, length int, src geometry.Range) Step {
	extent := src.Len()
	read := src.Add(pos)
	in := geometry.Span(max(0, read.Start), min(length, read.End)).Canon()

	return Step{
		Src:          in,
		Dst:          in.Add(shift - pos),
		KernelIndex:  center - pos,
		OutsideStart: min(extent, max(0, -read.Start)),
		OutsideEnd:   min(extent, max(0, read.End-length)),
	}
}
