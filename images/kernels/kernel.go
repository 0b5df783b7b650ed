package kernels

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-raster/images"
)

// Ones returns an unnormalized box kernel of 2*radius+1 taps, all set to 1.
// Filtering with it sums the window; divide by Sum(kernel) afterwards to
// get the mean. For radius <= 0 it returns the identity kernel [1].
func Ones[T images.Number](radius int) []T {
	kernel := make([]T, KernelSize(radius))
	for i := range kernel {
		kernel[i] = 1
	}
	return kernel
}

// BoxKernel returns a normalized box kernel of 2*radius+1 taps, each
// 1/(2*radius+1).
func BoxKernel(radius int) []float32 {
	kernel := make([]float32, KernelSize(radius))
	val := 1 / float32(len(kernel))
	for i := range kernel {
		kernel[i] = val
	}
	return kernel
}

// GaussianKernel generates a 1D Gaussian kernel normalized to sum to 1.
//
// The kernel has 2*ceil(3*sigma)+1 taps, covering three standard
// deviations. For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float32) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}

	half := int(math32.Ceil(sigma * 3))
	kernel := make([]float32, 2*half+1)

	// exp(-x²/2σ²); the constant factor cancels out in the normalization.
	twoSigmaSq := 2 * sigma * sigma
	var sum float32
	for i := range kernel {
		x := float32(i - half)
		kernel[i] = math32.Exp(-(x * x) / twoSigmaSq)
		sum += kernel[i]
	}

	inv := 1 / sum
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// KernelSize returns the number of taps of a kernel with the given radius.
func KernelSize(radius int) int {
	if radius <= 0 {
		return 1
	}
	return 2*radius + 1
}

// KernelCenter returns the index of the center tap of an odd kernel.
func KernelCenter(length int) int {
	return (length - 1) / 2
}

// Sum returns the total weight of a kernel, used to normalize results.
func Sum[T images.Number](kernel []T) T {
	var total T
	for _, v := range kernel {
		total += v
	}
	return total
}
