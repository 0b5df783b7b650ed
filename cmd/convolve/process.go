package main

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/images/filter"
	"github.com/nvr-ai/go-raster/images/imageio"
	"github.com/nvr-ai/go-raster/images/kernels"
	"github.com/nvr-ai/go-raster/images/motion"
)

// Mode selects the filter applied to each image.
type Mode string

// Mode constants
const (
	ModeHorizontal Mode = "horizontal"
	ModeVertical   Mode = "vertical"
	ModeSeparable  Mode = "separable"
	ModeBox        Mode = "box"
	ModeGaussian   Mode = "gaussian"
	ModeDilate     Mode = "dilate"
	ModeErode      Mode = "erode"
	// ModeMotion blurs the regions that moved since the previous frames.
	// It needs a directory of frames.
	ModeMotion Mode = "motion"
)

// Config holds the command configuration.
type Config struct {
	Input  string
	Dir    string
	Output string
	Mode   Mode
	// Kernel is used by the horizontal, vertical and separable modes.
	Kernel []int32
	Radius int
	Sigma  float64
	// Resize is applied before filtering when non-zero.
	Resize images.Size
	Encode imageio.Options
	Motion motion.Options
}

// Validate checks the configuration before any file is touched.
func (c Config) Validate() error {
	switch {
	case c.Input == "" && c.Dir == "":
		return errors.New("one of -input or -dir is required")
	case c.Input != "" && c.Dir != "":
		return errors.New("-input and -dir are mutually exclusive")
	case c.Output == "":
		return errors.New("-output is required")
	}
	if c.Input != "" {
		if _, err := imageio.FormatFromPath(c.Output); err != nil {
			return err
		}
	}

	switch c.Mode {
	case ModeHorizontal, ModeVertical, ModeSeparable:
		if err := kernels.ValidateKernel(len(c.Kernel)); err != nil {
			return err
		}
	case ModeBox, ModeDilate, ModeErode:
		if c.Radius < 0 {
			return errors.Errorf("invalid radius %d", c.Radius)
		}
	case ModeGaussian:
		if c.Sigma < 0 {
			return errors.Errorf("invalid sigma %g", c.Sigma)
		}
	case ModeMotion:
		if c.Dir == "" {
			return errors.New("motion mode requires -dir")
		}
		if c.Radius < 0 {
			return errors.Errorf("invalid radius %d", c.Radius)
		}
		if err := c.Motion.Validate(); err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	return nil
}

// Process applies the configured filter to img and returns a new image.
// The pool, if any, is used for box blur intermediates.
func Process(img *images.Buffer[uint8], cfg Config, pool *kernels.Pool[uint32]) (*images.Buffer[uint8], error) {
	img, err := prepare(img, cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case ModeHorizontal, ModeVertical, ModeSeparable:
		return directional(img, cfg.Mode, cfg.Kernel)
	case ModeBox:
		return kernels.BoxBlur(img, kernels.Options{Radius: cfg.Radius, Pool: pool})
	case ModeGaussian:
		return gaussian(img, float32(cfg.Sigma))
	case ModeDilate:
		return morphology(img, cfg.Radius, 0, kernels.Maximum[uint8])
	case ModeErode:
		return morphology(img, cfg.Radius, 255, kernels.Minimum[uint8])
	}
	return nil, errors.Errorf("mode %q cannot process a single image", cfg.Mode)
}

// Redact blurs the moving regions of the next frame of a stream. The
// frame is returned unchanged while seg seeds its background.
func Redact(img *images.Buffer[uint8], cfg Config, seg *motion.Segmenter, pool *kernels.Pool[uint32]) (*images.Buffer[uint8], []motion.Blob, error) {
	img, err := prepare(img, cfg)
	if err != nil {
		return nil, nil, err
	}
	blobs, err := seg.Segment(img)
	if err != nil {
		return nil, nil, err
	}
	if len(blobs) == 0 {
		return img, nil, nil
	}
	out, err := kernels.BlurRegions(img, motion.Regions(blobs), kernels.Options{Radius: cfg.Radius, Pool: pool})
	if err != nil {
		return nil, nil, err
	}
	return out, blobs, nil
}

func prepare(img *images.Buffer[uint8], cfg Config) (*images.Buffer[uint8], error) {
	if cfg.Resize.Area() == 0 {
		return img, nil
	}
	return imageio.Resize(img, cfg.Resize)
}

// directional convolves with an integer kernel in int32 and divides by the
// kernel weight, or by one for zero-sum kernels such as edge detectors.
func directional(img *images.Buffer[uint8], mode Mode, kernel []int32) (*images.Buffer[uint8], error) {
	wide := filter.Convert[int32, uint8](img)
	out := images.NewBufferLike[int32](img)

	var err error
	switch mode {
	case ModeHorizontal:
		err = kernels.Horizontal[int32](wide, out, kernel, kernels.Convolution[int32])
	case ModeVertical:
		err = kernels.Vertical[int32](wide, out, kernel, kernels.Convolution[int32])
	default:
		err = kernels.Separable[int32](wide, out, kernel, kernel, nil)
	}
	if err != nil {
		return nil, err
	}

	weight := kernelWeight(kernel)
	if mode == ModeSeparable {
		weight *= weight
	}
	filter.Update(out, func(v int32) int32 { return clamp(v/weight, 0, 255) })
	return filter.Convert[uint8, int32](out), nil
}

// kernelWeight is the sum of kernel, or one for non-positive sums.
func kernelWeight(kernel []int32) int32 {
	if w := kernels.Sum(kernel); w > 0 {
		return w
	}
	return 1
}

func gaussian(img *images.Buffer[uint8], sigma float32) (*images.Buffer[uint8], error) {
	out, err := kernels.GaussianBlur(filter.Convert[float32, uint8](img), sigma, nil)
	if err != nil {
		return nil, err
	}
	filter.Update(out, func(v float32) float32 { return clamp(v+0.5, 0, 255) })
	return filter.Convert[uint8, float32](out), nil
}

func morphology(img *images.Buffer[uint8], radius int, init uint8, op kernels.Operator[uint8]) (*images.Buffer[uint8], error) {
	window := kernels.Ones[uint8](radius)

	tmp := images.NewBufferFilled(img.Size(), init)
	if err := kernels.Horizontal[uint8](img, tmp, window, op); err != nil {
		return nil, err
	}
	out := images.NewBufferFilled(img.Size(), init)
	if err := kernels.Vertical[uint8](tmp, out, window, op); err != nil {
		return nil, err
	}
	return out, nil
}

func clamp[T images.Number](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
