package images

import (
	"crypto/md5"
	"fmt"
)

// Checksum generates a deterministic checksum of an 8-bit raster to verify
// idempotency of filter runs.
//
// Only the visible width of each line is hashed, so two rasters with equal
// pixels but different strides produce the same checksum.
//
// Arguments:
//   - r: The raster to compute the checksum for.
//
// Returns:
//   - A hex-encoded MD5 checksum string, or "empty" for a raster with no
//     pixels.
//
// Example:
//
//	checksum := images.Checksum(buf)
//	fmt.Printf("Frame checksum: %s\n", checksum)
func Checksum(r Raster[uint8]) string {
	size := r.Size()
	if size.Area() == 0 {
		return "empty"
	}

	hash := md5.New()
	for y := 0; y < size.Height; y++ {
		hash.Write(r.Line(y)[:size.Width])
	}
	return fmt.Sprintf("%x", hash.Sum(nil))
}
