package imageio

import (
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-raster/images"
)

// Resize scales img to size with Lanczos3 resampling.
//
// Arguments:
//   - img: The source raster.
//   - size: The target size. Both dimensions must be positive.
//
// Returns:
//   - *images.Buffer[uint8]: The resized raster.
//   - error: An error for empty sources or targets.
func Resize(img images.Raster[uint8], size images.Size) (*images.Buffer[uint8], error) {
	src := img.Size()
	if src.Area() == 0 {
		return nil, errors.Errorf("cannot resize empty %dx%d image", src.Width, src.Height)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, errors.Errorf("invalid dimensions: width=%d, height=%d", size.Width, size.Height)
	}
	if src == size {
		return FromImage(ToImage(img)), nil
	}

	out := resize.Resize(uint(size.Width), uint(size.Height), ToImage(img), resize.Lanczos3)
	return FromImage(out), nil
}
