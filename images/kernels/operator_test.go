package kernels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-raster/images"
)

func TestConvolutionOperator(t *testing.T) {
	output := []int{4, 5, 6}
	Convolution([]int{1, 2, 3}, output, 3)
	assert.Equal(t, []int{4 + 3*1, 5 + 3*2, 6 + 3*3}, output)
}

func TestConvolutionOperatorTruncatesToShorter(t *testing.T) {
	output := []float32{1, 1}
	Convolution([]float32{1, 2, 3}, output, 0.5)
	assert.Equal(t, []float32{1.5, 2}, output)

	output = []float32{1, 1, 1}
	Convolution([]float32{2}, output, 1)
	assert.Equal(t, []float32{3, 1, 1}, output)
}

func TestMaximumDilates(t *testing.T) {
	input := images.MustFromSlice(images.NewSize(5, 1), []uint8{0, 0, 9, 0, 3})
	output := images.NewBufferLike[uint8](input)

	require.NoError(t, Horizontal[uint8](input, output, []uint8{1, 1, 1}, Maximum[uint8]))
	assert.Equal(t, []uint8{0, 9, 9, 9, 3}, output.Line(0))
}

func TestMinimumErodes(t *testing.T) {
	input := images.MustFromSlice(images.NewSize(1, 5), []uint8{5, 5, 1, 5, 5})
	output := images.NewBufferFilled(images.NewSize(1, 5), uint8(255))

	require.NoError(t, Vertical[uint8](input, output, []uint8{1, 1, 1}, Minimum[uint8]))
	for y, expected := range []uint8{5, 1, 1, 1, 5} {
		assert.Equal(t, expected, output.At(0, y), "line %d", y)
	}

	// Zero taps are skipped, so a one-sided kernel only looks one way.
	output = images.NewBufferFilled(images.NewSize(1, 5), uint8(255))
	require.NoError(t, Vertical[uint8](input, output, []uint8{0, 1, 1}, Minimum[uint8]))
	for y, expected := range []uint8{5, 5, 1, 1, 5} {
		assert.Equal(t, expected, output.At(0, y), "line %d", y)
	}
}

func TestKernelGenerators(t *testing.T) {
	assert.Equal(t, []int{1}, Ones[int](0))
	assert.Equal(t, []int{1, 1, 1, 1, 1}, Ones[int](2))
	assert.Equal(t, 5, Sum(Ones[int](2)))

	box := BoxKernel(1)
	require.Len(t, box, 3)
	assert.InDelta(t, 1.0, Sum(box), 1e-6)

	assert.Equal(t, []float32{1}, GaussianKernel(0))
	g := GaussianKernel(1)
	require.Len(t, g, 7)
	assert.InDelta(t, 1.0, Sum(g), 1e-5)
	assert.Equal(t, 3, KernelCenter(len(g)))
	assert.Greater(t, g[3], g[2])
	assert.InDelta(t, g[1], g[5], 1e-7)

	assert.Equal(t, 1, KernelSize(-3))
	assert.Equal(t, 7, KernelSize(3))
}
