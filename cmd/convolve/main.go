// Command convolve runs the raster filters over image files.
//
// Usage:
//
//	convolve -input frame.png -output blurred.png -mode box -radius 2
//	convolve -dir frames/ -output out/ -mode horizontal -kernel 1,2,1
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/images/imageio"
	"github.com/nvr-ai/go-raster/images/kernels"
	"github.com/nvr-ai/go-raster/images/motion"
	"github.com/nvr-ai/go-raster/profiler"
)

const (
	// DefaultMode is the filter applied when -mode is not given.
	DefaultMode = ModeBox
	// DefaultKernel is the kernel used by the directional modes.
	DefaultKernel = "1,2,1"
)

func main() {
	var (
		cfg    Config
		kernel string
		resize string
		debug  bool
	)
	flag.StringVar(&cfg.Input, "input", "", "Path to an image file (.jpg, .jpeg, .png, .webp, .bmp)")
	flag.StringVar(&cfg.Dir, "dir", "", "Directory of image files to process in frame order")
	flag.StringVar(&cfg.Output, "output", "", "Output file, or output directory with -dir")
	flag.StringVar((*string)(&cfg.Mode), "mode", string(DefaultMode), "Filter: horizontal, vertical, separable, box, gaussian, dilate, erode, motion")
	flag.StringVar(&kernel, "kernel", DefaultKernel, "Comma separated odd-length integer kernel")
	flag.IntVar(&cfg.Radius, "radius", 1, "Window radius for box, dilate and erode")
	flag.Float64Var(&cfg.Sigma, "sigma", 1, "Standard deviation for gaussian")
	flag.StringVar(&resize, "resize", "", "Resize before filtering, as WIDTHxHEIGHT or a resolution name such as 720p")
	flag.IntVar(&cfg.Encode.Quality, "quality", imageio.DefaultQuality, "JPEG and WebP quality")
	flag.BoolVar(&cfg.Encode.Lossless, "lossless", false, "Write lossless WebP")
	cfg.Motion = motion.DefaultOptions()
	threshold := flag.Uint("threshold", uint(cfg.Motion.Threshold), "Motion difference threshold (0-255)")
	flag.IntVar(&cfg.Motion.MinimumArea, "min-area", cfg.Motion.MinimumArea, "Minimum moving pixels per motion region")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	images.SetLogger(logger)

	if *threshold > 255 {
		fatal(logger, errors.Errorf("invalid threshold %d", *threshold))
	}
	cfg.Motion.Threshold = uint8(*threshold)

	var err error
	if cfg.Kernel, err = parseKernel(kernel); err != nil {
		fatal(logger, err)
	}
	if cfg.Resize, err = parseSize(resize); err != nil {
		fatal(logger, err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(logger, err)
	}

	if cfg.Dir != "" {
		err = runDirectory(logger, cfg)
	} else {
		err = runFile(logger, cfg, cfg.Input, cfg.Output)
	}
	if err != nil {
		fatal(logger, err)
	}
}

func fatal(logger *slog.Logger, err error) {
	logger.Error("convolve failed", "error", err)
	os.Exit(1)
}

func runFile(logger *slog.Logger, cfg Config, input, output string) error {
	img, err := imageio.Load(input)
	if err != nil {
		return err
	}
	out, err := Process(img, cfg, nil)
	if err != nil {
		return errors.Wrap(err, input)
	}
	if err := imageio.Save(output, out, &cfg.Encode); err != nil {
		return err
	}
	logger.Info("wrote image", "input", input, "output", output, "mode", cfg.Mode, "checksum", images.Checksum(out))
	return nil
}

func runDirectory(logger *slog.Logger, cfg Config) error {
	files, err := imageio.LoadDirectory(cfg.Dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", cfg.Output)
	}

	// Frames of one directory usually share a size, so the blur
	// intermediates are reused across them.
	pool := &kernels.Pool[uint32]{}
	var seg *motion.Segmenter
	if cfg.Mode == ModeMotion {
		if seg, err = motion.NewSegmenter(cfg.Motion); err != nil {
			return err
		}
	}

	prof := profiler.New(len(files))
	defer prof.Log(logger)

	for _, f := range files {
		done := prof.StartOperation("decode")
		img, err := f.Decode()
		done()
		if err != nil {
			return err
		}

		done = prof.StartOperation("filter")
		var out *images.Buffer[uint8]
		if seg != nil {
			var blobs []motion.Blob
			out, blobs, err = Redact(img, cfg, seg, pool)
			prof.RecordMetric("motion_regions", float64(len(blobs)))
			if len(blobs) > 0 {
				logger.Info("motion detected", "frame", f.Frame, "regions", len(blobs), "largest", blobs[0].Region)
			}
		} else {
			out, err = Process(img, cfg, pool)
		}
		done()
		if err != nil {
			return errors.Wrap(err, f.Path)
		}
		path := filepath.Join(cfg.Output, filepath.Base(f.Path))
		done = prof.StartOperation("encode")
		err = imageio.Save(path, out, &cfg.Encode)
		done()
		if err != nil {
			return err
		}
		logger.Info("wrote frame", "frame", f.Frame, "output", path, "checksum", images.Checksum(out))
	}
	logger.Info("processed directory", "dir", cfg.Dir, "frames", len(files))
	return nil
}

func parseKernel(s string) ([]int32, error) {
	var kernel []int32
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid kernel value %q", field)
		}
		kernel = append(kernel, int32(v))
	}
	return kernel, nil
}

func parseSize(s string) (images.Size, error) {
	if s == "" {
		return images.Size{}, nil
	}
	if r, ok := images.LookupResolution(s); ok {
		return r.Size, nil
	}
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return images.Size{}, errors.Errorf("invalid size %q, expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return images.Size{}, errors.Wrapf(err, "invalid width in %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return images.Size{}, errors.Wrapf(err, "invalid height in %q", s)
	}
	if width <= 0 || height <= 0 {
		return images.Size{}, errors.Errorf("invalid size %q", s)
	}
	return images.NewSize(width, height), nil
}
