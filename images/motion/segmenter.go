// Package motion detects moving regions in a stream of gray frames.
//
// The Segmenter runs a frame differencing pipeline built on the raster
// filters:
//
//	frame -> box blur -> |frame - background| -> threshold -> dilate -> blobs
//
// The background is a running average of the blurred frames, so slow
// lighting changes fade into it while moving objects stand out.
//
// Usage:
//
//	seg, err := motion.NewSegmenter(motion.DefaultOptions())
//	for frame := range frames {
//	    blobs, err := seg.Segment(frame)
//	    if motion.Detect(blobs, minimumArea) {
//	        ...
//	    }
//	}
package motion

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/images/filter"
	"github.com/nvr-ai/go-raster/images/kernels"
)

// Options configures a Segmenter.
type Options struct {
	// Threshold is the absolute difference above which a pixel is moving.
	Threshold uint8 `json:"threshold" yaml:"threshold"`
	// BlurRadius denoises frames before differencing.
	BlurRadius int `json:"blurRadius" yaml:"blurRadius"`
	// DilateRadius grows the motion mask to join fragmented blobs.
	DilateRadius int `json:"dilateRadius" yaml:"dilateRadius"`
	// MinimumArea drops blobs with fewer moving pixels.
	MinimumArea int `json:"minimumArea" yaml:"minimumArea"`
	// LearningRate is the weight of the newest frame in the background
	// average, in (0, 1]. 1 compares each frame against the previous one.
	LearningRate float32 `json:"learningRate" yaml:"learningRate"`
	// MergeIoU merges blobs whose bounding regions overlap at least this
	// much. 0 disables merging.
	MergeIoU float32 `json:"mergeIoU" yaml:"mergeIoU"`
}

// DefaultOptions returns the options used for surveillance footage.
func DefaultOptions() Options {
	return Options{
		Threshold:    25,
		BlurRadius:   2,
		DilateRadius: 3,
		MinimumArea:  64,
		LearningRate: 0.05,
		MergeIoU:     0.1,
	}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	switch {
	case o.BlurRadius < 0 || o.DilateRadius < 0:
		return errors.Errorf("invalid radius: blur=%d, dilate=%d", o.BlurRadius, o.DilateRadius)
	case o.MinimumArea < 0:
		return errors.Errorf("invalid minimum area %d", o.MinimumArea)
	case o.LearningRate <= 0 || o.LearningRate > 1:
		return errors.Errorf("learning rate %g outside (0, 1]", o.LearningRate)
	case o.MergeIoU < 0 || o.MergeIoU > 1:
		return errors.Errorf("merge IoU %g outside [0, 1]", o.MergeIoU)
	}
	return nil
}

// Segmenter finds moving blobs in successive frames of one stream.
//
// A Segmenter is stateful and not safe for concurrent use.
type Segmenter struct {
	opt        Options
	background *images.Buffer[float32]
	mask       *images.Buffer[uint8]
	pool       *kernels.Pool[uint32]
}

// NewSegmenter creates a Segmenter with an empty background.
func NewSegmenter(opt Options) (*Segmenter, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return &Segmenter{opt: opt, pool: &kernels.Pool[uint32]{}}, nil
}

// Segment feeds the next frame and returns the moving blobs, largest first.
//
// The first frame, and the first frame after a size change, only seed the
// background and report no motion.
func (s *Segmenter) Segment(frame images.Raster[uint8]) ([]Blob, error) {
	blurred, err := kernels.BoxBlur(frame, kernels.Options{Radius: s.opt.BlurRadius, Pool: s.pool})
	if err != nil {
		return nil, errors.Wrap(err, "failed to blur frame")
	}

	if s.background == nil || s.background.Size() != blurred.Size() {
		s.background = filter.Convert[float32, uint8](blurred)
		s.mask = nil
		images.Logger().Debug("motion background seeded", "width", blurred.Size().Width, "height", blurred.Size().Height)
		return nil, nil
	}

	delta := filter.MapNew[float32, uint8](s.background, func(bg float32) uint8 { return uint8(bg + 0.5) })
	filter.Map[uint8, uint8](blurred, delta, func(v, bg uint8) uint8 {
		if v > bg {
			return v - bg
		}
		return bg - v
	})
	threshold := s.opt.Threshold
	filter.Update(delta, func(v uint8) uint8 {
		if v > threshold {
			return 255
		}
		return 0
	})

	mask, err := dilate(delta, s.opt.DilateRadius)
	if err != nil {
		return nil, err
	}
	s.mask = mask

	rate := s.opt.LearningRate
	filter.Map[uint8, float32](blurred, s.background, func(v uint8, bg float32) float32 {
		return bg + rate*(float32(v)-bg)
	})

	blobs, err := Blobs(mask, s.opt.MinimumArea)
	if err != nil {
		return nil, err
	}
	if s.opt.MergeIoU > 0 {
		blobs = Merge(blobs, s.opt.MergeIoU)
	}
	images.Logger().Debug("motion segmented", "blobs", len(blobs))
	return blobs, nil
}

// Mask returns the dilated motion mask of the last frame, with moving
// pixels set to 255. It is nil until a second frame has been segmented.
func (s *Segmenter) Mask() images.Raster[uint8] {
	if s.mask == nil {
		return nil
	}
	return s.mask
}

// Reset forgets the background.
func (s *Segmenter) Reset() {
	s.background = nil
	s.mask = nil
}

func dilate(mask *images.Buffer[uint8], radius int) (*images.Buffer[uint8], error) {
	if radius == 0 {
		return mask, nil
	}
	window := kernels.Ones[uint8](radius)
	tmp := images.NewBufferLike[uint8](mask)
	if err := kernels.Horizontal[uint8](mask, tmp, window, kernels.Maximum[uint8]); err != nil {
		return nil, err
	}
	out := images.NewBufferLike[uint8](mask)
	if err := kernels.Vertical[uint8](tmp, out, window, kernels.Maximum[uint8]); err != nil {
		return nil, err
	}
	return out, nil
}
