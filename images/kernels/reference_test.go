package kernels

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
)

func clampIndex(i, n int) int {
	return min(max(i, 0), n-1)
}

// referenceFilter convolves one pixel the slow way: every tap reads its
// source pixel directly, clamping coordinates to the raster.
func referenceFilter(input *images.Buffer[int], kernel []int, x, y int, horizontal bool) int {
	size := input.Size()
	center := (len(kernel) - 1) / 2
	var sum int
	for pos := -center; pos < len(kernel)-center; pos++ {
		k := kernel[center-pos]
		if horizontal {
			sum += k * input.At(clampIndex(x+pos, size.Width), y)
		} else {
			sum += k * input.At(x, clampIndex(y+pos, size.Height))
		}
	}
	return sum
}

func randomBuffer(rng *rand.Rand, size images.Size) *images.Buffer[int] {
	stride := size.Width + rng.Intn(3)
	buf := images.NewBufferStride[int](images.Layout{Size: size, Stride: stride})
	for i := range buf.Pixels() {
		buf.Pixels()[i] = rng.Intn(200) - 100
	}
	return buf
}

func randomKernel(rng *rand.Rand) []int {
	kernel := make([]int, 2*rng.Intn(4)+1)
	for i := range kernel {
		kernel[i] = rng.Intn(11) - 5
	}
	return kernel
}

func randomRegion(rng *rand.Rand) geometry.Region {
	x0, y0 := rng.Intn(14)-4, rng.Intn(14)-4
	return geometry.Rect(x0, y0, x0+rng.Intn(12), y0+rng.Intn(12))
}

func TestDriversMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for iter := 0; iter < 500; iter++ {
		input := randomBuffer(rng, images.NewSize(rng.Intn(9)+1, rng.Intn(9)+1))
		outSize := images.NewSize(rng.Intn(10), rng.Intn(10))
		kernel := randomKernel(rng)
		inRegion, outRegion := randomRegion(rng), randomRegion(rng)

		for _, horizontal := range []bool{true, false} {
			const initial = 1000
			output := images.NewBufferFilled(outSize, initial)

			var err error
			if horizontal {
				err = HorizontalRegion[int](input, output, kernel, inRegion, outRegion, Convolution[int])
			} else {
				err = VerticalRegion[int](input, output, kernel, inRegion, outRegion, Convolution[int])
			}
			require.NoError(t, err)

			mapping := geometry.NewMapping(inRegion, outRegion, images.Bounds[int](input), images.Bounds[int](output))
			for y := 0; y < outSize.Height; y++ {
				for x := 0; x < outSize.Width; x++ {
					expected := initial
					if !mapping.Empty() && mapping.Dst.Contains(geometry.Pt(x, y)) {
						src := geometry.Pt(x, y).Sub(mapping.Shift)
						expected += referenceFilter(input, kernel, src.X, src.Y, horizontal)
					}
					require.Equal(t, expected, output.At(x, y),
						"horizontal=%v pixel (%d, %d) kernel %v in %v out %v", horizontal, x, y, kernel, inRegion, outRegion)
				}
			}
		}
	}
}

func TestIdentityKernelReproducesImage(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, size := range []images.Size{
		images.NewSize(0, 0), images.NewSize(1, 1), images.NewSize(7, 1), images.NewSize(1, 7), images.NewSize(6, 5),
	} {
		input := randomBuffer(rng, size)

		h := images.NewBuffer[int](size)
		require.NoError(t, Horizontal[int](input, h, []int{1}, Convolution[int]))
		require.True(t, images.Equal[int](input, h), "horizontal %v", size)

		v := images.NewBuffer[int](size)
		require.NoError(t, Vertical[int](input, v, []int{1}, Convolution[int]))
		require.True(t, images.Equal[int](input, v), "vertical %v", size)
	}
}
