package kernels

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/images/filter"
)

// Options configures the blur helpers.
type Options struct {
	Radius  int           // Horizontal blur radius (window = 2*Radius + 1). Must be >= 0.
	RadiusY int           // Vertical radius; 0 means same as Radius.
	Pool    *Pool[uint32] // Optional buffer pool for intermediate sums.
}

func (o Options) radii() (int, int, error) {
	if o.Radius < 0 || o.RadiusY < 0 {
		return 0, 0, errors.Errorf("invalid blur radius %d/%d", o.Radius, o.RadiusY)
	}
	ry := o.RadiusY
	if ry == 0 {
		ry = o.Radius
	}
	return o.Radius, ry, nil
}

// Pool lets callers reuse intermediate buffers across calls, e.g. when
// blurring every frame of a video stream.
type Pool[T any] struct {
	buffers sync.Pool // *images.Buffer[T]
}

// Get returns a zero valued buffer of the given size. A nil pool always
// allocates.
func (p *Pool[T]) Get(size images.Size) *images.Buffer[T] {
	if p == nil {
		return images.NewBuffer[T](size)
	}
	if v := p.buffers.Get(); v != nil {
		buf := v.(*images.Buffer[T])
		if buf.Size() == size {
			var zero T
			buf.Fill(zero)
			return buf
		}
	}
	return images.NewBuffer[T](size)
}

// Put hands a buffer back to the pool. The caller must not use it after.
func (p *Pool[T]) Put(buf *images.Buffer[T]) {
	if p == nil || buf == nil {
		return
	}
	p.buffers.Put(buf)
}

// Separable convolves input with kx along lines and then ky along columns,
// accumulating the result into output.
//
// Output is not cleared first, so it normally starts zero valued. The
// intermediate line pass goes through a buffer taken from pool.
func Separable[T images.Number](
	input images.Raster[T],
	output images.MutableRaster[T],
	kx, ky []T,
	pool *Pool[T],
) error {
	return SeparableRegion(input, output, kx, ky, images.Bounds(input), images.Bounds[T](output), pool)
}

// SeparableRegion is Separable restricted to a pair of regions.
//
// The line pass covers every line of the columns in inputRegion, so the
// column pass reads real neighbours above and below the region and only
// replicates at the raster edges. The result equals filtering the whole
// raster and then copying the region.
func SeparableRegion[T images.Number](
	input images.Raster[T],
	output images.MutableRaster[T],
	kx, ky []T,
	inputRegion, outputRegion geometry.Region,
	pool *Pool[T],
) error {
	if err := ValidateKernel(len(kx)); err != nil {
		return errors.Wrap(err, "horizontal kernel")
	}
	if err := ValidateKernel(len(ky)); err != nil {
		return errors.Wrap(err, "vertical kernel")
	}

	bounds := images.Bounds(input)
	rows := geometry.Region{X: inputRegion.X, Y: bounds.Y}

	tmp := pool.Get(input.Size())
	defer pool.Put(tmp)

	if err := HorizontalRegion[T](input, tmp, kx, rows, rows, Convolution[T]); err != nil {
		return err
	}
	return VerticalRegion[T](tmp, output, ky, inputRegion, outputRegion, Convolution[T])
}

// BoxBlur applies a separable box blur to an 8-bit raster.
//
// Pixels are summed in 32-bit accumulators through the plan drivers and the
// result is rounded back to the window mean. Edges replicate the nearest
// pixel. For Radius 0 the result is a copy of input.
func BoxBlur(input images.Raster[uint8], opt Options) (*images.Buffer[uint8], error) {
	rx, ry, err := opt.radii()
	if err != nil {
		return nil, err
	}

	wide := filter.Convert[uint32, uint8](input)
	sums := opt.Pool.Get(input.Size())
	defer opt.Pool.Put(sums)

	if err := Separable(wide, sums, Ones[uint32](rx), Ones[uint32](ry), opt.Pool); err != nil {
		return nil, err
	}

	window := uint32(KernelSize(rx) * KernelSize(ry))
	return filter.MapNew[uint32, uint8](sums, func(s uint32) uint8 {
		return uint8((s + window/2) / window)
	}), nil
}

// BlurRegions blurs only the given regions of input and returns the result
// as a new raster; pixels outside every region are copied unchanged.
//
// Each region is computed from the original pixels, so overlapping regions
// are handled naturally. Regions are clipped to the raster bounds.
func BlurRegions(input images.Raster[uint8], regions []geometry.Region, opt Options) (*images.Buffer[uint8], error) {
	rx, ry, err := opt.radii()
	if err != nil {
		return nil, err
	}

	out := filter.MapNew(input, func(x uint8) uint8 { return x })
	wide := filter.Convert[uint32, uint8](input)
	window := uint32(KernelSize(rx) * KernelSize(ry))
	bounds := images.Bounds(input)

	for _, r := range regions {
		r = r.Clamp(bounds)
		if r.Empty() {
			continue
		}

		sums := opt.Pool.Get(input.Size())
		if err := SeparableRegion(wide, sums, Ones[uint32](rx), Ones[uint32](ry), r, r, opt.Pool); err != nil {
			opt.Pool.Put(sums)
			return nil, err
		}
		filter.MapRegion[uint32, uint8](sums, out, r, r, func(s uint32, _ uint8) uint8 {
			return uint8((s + window/2) / window)
		})
		opt.Pool.Put(sums)
	}
	return out, nil
}

// GaussianBlur returns input blurred with a separable Gaussian kernel of
// standard deviation sigma. The kernel is normalized, so no further
// division is needed.
func GaussianBlur(input images.Raster[float32], sigma float32, pool *Pool[float32]) (*images.Buffer[float32], error) {
	kernel := GaussianKernel(sigma)
	output := images.NewBufferLike[float32](input)
	if err := Separable(input, output, kernel, kernel, pool); err != nil {
		return nil, err
	}
	return output, nil
}
