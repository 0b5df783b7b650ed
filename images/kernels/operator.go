package kernels

import "github.com/nvr-ai/go-raster/images"

// Operator combines one kernel coefficient and a run of source pixels into
// the matching run of destination pixels.
//
// The drivers call it with slices of equal length; implementations must
// still stay in bounds when lengths differ.
type Operator[T any] func(src, dst []T, k T)

// Convolution computes dst[i] += k*src[i] for every index shared by src and
// dst. It is the multiply-accumulate operator for convolution filters.
func Convolution[T images.Number](src, dst []T, k T) {
	n := min(len(src), len(dst))
	src, dst = src[:n], dst[:n]
	for i := range dst {
		dst[i] += k * src[i]
	}
}

// Maximum sets dst[i] to max(dst[i], src[i]) for taps with a non-zero
// coefficient. With a kernel of ones and an output initialized to the
// lowest pixel value it computes a 1D dilation.
func Maximum[T images.Number](src, dst []T, k T) {
	if k == 0 {
		return
	}
	n := min(len(src), len(dst))
	for i := 0; i < n; i++ {
		dst[i] = max(dst[i], src[i])
	}
}

// Minimum sets dst[i] to min(dst[i], src[i]) for taps with a non-zero
// coefficient. It is the erosion counterpart of Maximum.
func Minimum[T images.Number](src, dst []T, k T) {
	if k == 0 {
		return
	}
	n := min(len(src), len(dst))
	for i := 0; i < n; i++ {
		dst[i] = min(dst[i], src[i])
	}
}
