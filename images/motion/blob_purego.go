//go:build nogocv

package motion

import (
	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
)

// Blobs labels the 4-connected components of the non-zero pixels of mask
// with a flood fill and returns those with at least minimumArea pixels,
// largest first.
func Blobs(mask images.Raster[uint8], minimumArea int) ([]Blob, error) {
	size := mask.Size()
	seen := make([]bool, size.Area())
	var (
		blobs []Blob
		stack []geometry.Point
	)

	for y := 0; y < size.Height; y++ {
		line := mask.Line(y)
		for x := 0; x < size.Width; x++ {
			if line[x] == 0 || seen[y*size.Width+x] {
				continue
			}

			blob := Blob{Region: geometry.Rect(x, y, x+1, y+1)}
			seen[y*size.Width+x] = true
			stack = append(stack[:0], geometry.Pt(x, y))
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				blob.Area++
				blob.Region = blob.Region.Union(geometry.Rect(p.X, p.Y, p.X+1, p.Y+1))

				for _, n := range [4]geometry.Point{{X: p.X - 1, Y: p.Y}, {X: p.X + 1, Y: p.Y}, {X: p.X, Y: p.Y - 1}, {X: p.X, Y: p.Y + 1}} {
					if n.X < 0 || n.Y < 0 || n.X >= size.Width || n.Y >= size.Height {
						continue
					}
					i := n.Y*size.Width + n.X
					if seen[i] || mask.Line(n.Y)[n.X] == 0 {
						continue
					}
					seen[i] = true
					stack = append(stack, n)
				}
			}

			if blob.Area >= minimumArea {
				blobs = append(blobs, blob)
			}
		}
	}

	sortBlobs(blobs)
	return blobs, nil
}
