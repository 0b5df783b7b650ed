package motion

import (
	"sort"

	"github.com/nvr-ai/go-raster/geometry"
)

// Blob is a 4-connected group of moving pixels.
//
// Blobs are labeled by OpenCV connected components. Building with the
// nogocv tag swaps in a flood fill labeler that needs no cgo and returns
// the same blobs.
type Blob struct {
	// Region is the bounding region of the blob.
	Region geometry.Region
	// Area is the number of moving pixels, at most Region.Area().
	Area int
}

// Merge joins blobs whose bounding regions have an IoU of at least minIoU
// until no pair qualifies. Merged blobs cover the union of the regions and
// sum the areas.
func Merge(blobs []Blob, minIoU float32) []Blob {
	out := append([]Blob(nil), blobs...)
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(out) && !merged; i++ {
			for j := i + 1; j < len(out); j++ {
				if geometry.IoU(out[i].Region, out[j].Region) < minIoU {
					continue
				}
				out[i].Region = out[i].Region.Union(out[j].Region)
				out[i].Area += out[j].Area
				out = append(out[:j], out[j+1:]...)
				merged = true
				break
			}
		}
	}
	sortBlobs(out)
	return out
}

// Detect reports whether any blob has at least minimumArea moving pixels.
func Detect(blobs []Blob, minimumArea int) bool {
	for _, b := range blobs {
		if b.Area >= minimumArea {
			return true
		}
	}
	return false
}

// Regions returns the bounding regions of blobs.
func Regions(blobs []Blob) []geometry.Region {
	regions := make([]geometry.Region, len(blobs))
	for i, b := range blobs {
		regions[i] = b.Region
	}
	return regions
}

func sortBlobs(blobs []Blob) {
	sort.SliceStable(blobs, func(i, j int) bool {
		a, b := blobs[i], blobs[j]
		if a.Area != b.Area {
			return a.Area > b.Area
		}
		if a.Region.Y.Start != b.Region.Y.Start {
			return a.Region.Y.Start < b.Region.Y.Start
		}
		return a.Region.X.Start < b.Region.X.Start
	})
}
