//go:build !nogocv

package motion

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/images/matraster"
)

// Blobs labels the 4-connected components of the non-zero pixels of mask
// and returns those with at least minimumArea pixels, largest first.
//
// A *matraster.Mat mask is labeled in place; any other raster is copied
// into a temporary matrix first.
func Blobs(mask images.Raster[uint8], minimumArea int) ([]Blob, error) {
	if mask.Size().Area() == 0 {
		return nil, nil
	}

	src, release, err := maskMat(mask)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert motion mask")
	}
	defer release()

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()

	n := gocv.ConnectedComponentsWithStatsWithParams(src, &labels, &stats, &centroids, 4, gocv.MatTypeCV32S, gocv.CCL_WU)

	var blobs []Blob
	// Label 0 is the background.
	for label := 1; label < n; label++ {
		area := int(stats.GetIntAt(label, int(gocv.CC_STAT_AREA)))
		if area < minimumArea {
			continue
		}
		x := int(stats.GetIntAt(label, int(gocv.CC_STAT_LEFT)))
		y := int(stats.GetIntAt(label, int(gocv.CC_STAT_TOP)))
		w := int(stats.GetIntAt(label, int(gocv.CC_STAT_WIDTH)))
		h := int(stats.GetIntAt(label, int(gocv.CC_STAT_HEIGHT)))
		blobs = append(blobs, Blob{Region: geometry.Rect(x, y, x+w, y+h), Area: area})
	}

	sortBlobs(blobs)
	return blobs, nil
}

func maskMat(mask images.Raster[uint8]) (gocv.Mat, func(), error) {
	if m, ok := mask.(*matraster.Mat); ok {
		return m.Mat(), func() {}, nil
	}
	mat, err := matraster.FromRaster(mask)
	if err != nil {
		return gocv.Mat{}, nil, err
	}
	return mat, func() { mat.Close() }, nil
}
