package filter

import (
	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
)

// UpdateRegion replaces every pixel of img within region by op applied to
// it. The part of region outside the raster is ignored.
func UpdateRegion[T any](img images.MutableRaster[T], region geometry.Region, op func(T) T) {
	region = region.Clamp(images.Bounds[T](img))

	for y := region.Y.Start; y < region.Y.End; y++ {
		dst := img.MutableLine(y)[region.X.Start:region.X.End]
		for x := range dst {
			dst[x] = op(dst[x])
		}
	}
}

// Update replaces every pixel of img by op applied to it, e.g. to divide a
// convolution result by the kernel weight.
func Update[T any](img images.MutableRaster[T], op func(T) T) {
	UpdateRegion(img, images.Bounds[T](img), op)
}
