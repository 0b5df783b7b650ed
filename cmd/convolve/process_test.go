package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/images/imageio"
	"github.com/nvr-ai/go-raster/images/kernels"
	"github.com/nvr-ai/go-raster/images/motion"
)

func spot() *images.Buffer[uint8] {
	return images.MustFromSlice(images.NewSize(3, 3), []uint8{
		0, 0, 0,
		0, 9, 0,
		0, 0, 0,
	})
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Input: "in.png", Output: "out.png", Mode: ModeHorizontal, Kernel: []int32{1, 2, 1}}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no input", func(c *Config) { c.Input = "" }},
		{"input and dir", func(c *Config) { c.Dir = "frames" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"unknown output format", func(c *Config) { c.Output = "out.gif" }},
		{"even kernel", func(c *Config) { c.Kernel = []int32{1, 1} }},
		{"empty kernel", func(c *Config) { c.Kernel = nil }},
		{"negative radius", func(c *Config) { c.Mode, c.Radius = ModeBox, -1 }},
		{"negative sigma", func(c *Config) { c.Mode, c.Sigma = ModeGaussian, -0.5 }},
		{"unknown mode", func(c *Config) { c.Mode = "sharpen" }},
		{"motion without dir", func(c *Config) { c.Mode, c.Motion = ModeMotion, motion.DefaultOptions() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	dir := Config{Dir: "frames", Output: "out", Mode: ModeBox}
	assert.NoError(t, dir.Validate(), "directory output needs no extension")

	dir.Mode, dir.Motion = ModeMotion, motion.DefaultOptions()
	assert.NoError(t, dir.Validate())
	dir.Motion.LearningRate = 0
	assert.Error(t, dir.Validate())
}

func TestProcessDirectional(t *testing.T) {
	row := images.MustFromSlice(images.NewSize(4, 1), []uint8{0, 4, 8, 12})

	out, err := Process(row, Config{Mode: ModeHorizontal, Kernel: []int32{1, 2, 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 4, 8, 11}, out.Line(0))

	// A vertical pass over a single line sees only replicated edges.
	out, err = Process(row, Config{Mode: ModeVertical, Kernel: []int32{1, 2, 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 4, 8, 12}, out.Line(0))

	out, err = Process(spot(), Config{Mode: ModeSeparable, Kernel: []int32{1, 2, 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(9*4/16), out.At(1, 1))
	assert.Equal(t, uint8(9/16), out.At(0, 0))

	// Zero-sum kernels are not divided and negative responses clamp to 0.
	out, err = Process(row, Config{Mode: ModeHorizontal, Kernel: []int32{1, 0, -1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint8{4, 8, 8, 4}, out.Line(0))

	out, err = Process(row, Config{Mode: ModeHorizontal, Kernel: []int32{-1, 0, 1}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 0}, out.Line(0))
}

func TestProcessNegativeSumKernelIsNotDivided(t *testing.T) {
	flat := images.NewBufferFilled(images.NewSize(3, 3), uint8(10))
	kernel := []int32{-1, -2, -1}
	assert.Equal(t, int32(1), kernelWeight(kernel))

	// The outer product of the kernel with itself is positive, so the
	// separable pass sums 16 times the pixel and keeps it undivided.
	out, err := Process(flat, Config{Mode: ModeSeparable, Kernel: kernel}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(160), out.At(1, 1))

	out, err = Process(flat, Config{Mode: ModeHorizontal, Kernel: kernel}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), out.At(1, 1))
}

func TestProcessMorphology(t *testing.T) {
	out, err := Process(spot(), Config{Mode: ModeDilate, Radius: 1}, nil)
	require.NoError(t, err)
	assert.True(t, images.Equal[uint8](images.NewBufferFilled(images.NewSize(3, 3), uint8(9)), out))

	out, err = Process(spot(), Config{Mode: ModeErode, Radius: 1}, nil)
	require.NoError(t, err)
	assert.True(t, images.Equal[uint8](images.NewBuffer[uint8](images.NewSize(3, 3)), out))

	out, err = Process(spot(), Config{Mode: ModeErode, Radius: 0}, nil)
	require.NoError(t, err)
	assert.True(t, images.Equal[uint8](spot(), out))
}

func TestProcessBlurs(t *testing.T) {
	out, err := Process(spot(), Config{Mode: ModeBox, Radius: 0}, &kernels.Pool[uint32]{})
	require.NoError(t, err)
	assert.True(t, images.Equal[uint8](spot(), out))

	out, err = Process(spot(), Config{Mode: ModeBox, Radius: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), out.At(1, 1))

	out, err = Process(spot(), Config{Mode: ModeGaussian, Sigma: 0}, nil)
	require.NoError(t, err)
	assert.True(t, images.Equal[uint8](spot(), out))

	out, err = Process(images.NewBufferFilled(images.NewSize(5, 5), uint8(77)), Config{Mode: ModeGaussian, Sigma: 1.5}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(77), out.At(2, 2))
}

func TestProcessResize(t *testing.T) {
	img := images.NewBufferFilled(images.NewSize(8, 8), uint8(50))
	out, err := Process(img, Config{Mode: ModeBox, Resize: images.NewSize(4, 2)}, nil)
	require.NoError(t, err)
	assert.Equal(t, images.NewSize(4, 2), out.Size())
}

func TestParseFlags(t *testing.T) {
	k, err := parseKernel(" 1, -2 ,1,")
	require.NoError(t, err)
	assert.Equal(t, []int32{1, -2, 1}, k)
	_, err = parseKernel("1,a,1")
	assert.Error(t, err)

	size, err := parseSize("720p")
	require.NoError(t, err)
	assert.Equal(t, images.NewSize(1280, 720), size)

	size, err = parseSize("640X480")
	require.NoError(t, err)
	assert.Equal(t, images.NewSize(640, 480), size)
	size, err = parseSize("")
	require.NoError(t, err)
	assert.Zero(t, size.Area())
	for _, bad := range []string{"640", "0x10", "ax2", "2xb"} {
		_, err = parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestRunFileAndDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	out := filepath.Join(dir, "out")

	require.NoError(t, imageio.Save(filepath.Join(dir, "spot.png"), spot(), nil))
	cfg := Config{Mode: ModeDilate, Radius: 1}
	require.NoError(t, runFile(logger, cfg, filepath.Join(dir, "spot.png"), filepath.Join(dir, "dilated.bmp")))

	dilated, err := imageio.Load(filepath.Join(dir, "dilated.bmp"))
	require.NoError(t, err)
	assert.Equal(t, uint8(9), dilated.At(0, 0))

	require.Error(t, runDirectory(logger, Config{Dir: frames, Output: out, Mode: ModeBox}))

	require.NoError(t, os.MkdirAll(frames, 0o755))
	for _, name := range []string{"frame-1.png", "frame-2.png"} {
		require.NoError(t, imageio.Save(filepath.Join(frames, name), spot(), nil))
	}
	require.NoError(t, runDirectory(logger, Config{Dir: frames, Output: out, Mode: ModeErode, Radius: 1}))
	for _, name := range []string{"frame-1.png", "frame-2.png"} {
		eroded, err := imageio.Load(filepath.Join(out, name))
		require.NoError(t, err)
		assert.Equal(t, uint8(0), eroded.At(1, 1), name)
	}
}

func TestRedactBlursMovingRegion(t *testing.T) {
	opt := motion.DefaultOptions()
	opt.BlurRadius, opt.DilateRadius, opt.MinimumArea, opt.LearningRate = 0, 0, 1, 1
	seg, err := motion.NewSegmenter(opt)
	require.NoError(t, err)
	cfg := Config{Mode: ModeMotion, Radius: 1}

	still := images.NewBuffer[uint8](images.NewSize(9, 9))
	out, blobs, err := Redact(still, cfg, seg, nil)
	require.NoError(t, err)
	assert.Empty(t, blobs)
	assert.Same(t, still, out)

	moved := images.NewBuffer[uint8](images.NewSize(9, 9))
	moved.Set(4, 4, 90)
	out, blobs, err = Redact(moved, cfg, seg, nil)
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.Equal(t, 1, blobs[0].Area)
	assert.Equal(t, uint8(10), out.At(4, 4), "the moving pixel is averaged over its window")
	assert.Equal(t, uint8(0), out.At(3, 3), "pixels outside the region are untouched")

	_, err = Process(moved, cfg, nil)
	assert.Error(t, err)
}

func TestRunDirectoryMotion(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	frames, out := filepath.Join(dir, "frames"), filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(frames, 0o755))

	require.NoError(t, imageio.Save(filepath.Join(frames, "frame-1.png"), images.NewBuffer[uint8](images.NewSize(32, 32)), nil))
	require.NoError(t, imageio.Save(filepath.Join(frames, "frame-2.png"), images.NewBufferFilled(images.NewSize(32, 32), uint8(200)), nil))

	cfg := Config{Dir: frames, Output: out, Mode: ModeMotion, Radius: 2, Motion: motion.DefaultOptions()}
	require.NoError(t, cfg.Validate())
	require.NoError(t, runDirectory(logger, cfg))

	for _, name := range []string{"frame-1.png", "frame-2.png"} {
		_, err := imageio.Load(filepath.Join(out, name))
		require.NoError(t, err, name)
	}
}
