package geometry

import "fmt"

// Region is an axis-aligned rectangle of pixel coordinates described by
// independent half-open ranges on each axis.
type Region struct {
	X Range
	Y Range
}

// Rect returns the region [x0, x1) x [y0, y1).
func Rect(x0, y0, x1, y1 int) Region {
	return Region{X: Span(x0, x1), Y: Span(y0, y1)}
}

// RegionOf returns the region covering a width x height raster anchored
// at the origin.
func RegionOf(width, height int) Region {
	return Rect(0, 0, width, height)
}

// Width returns the number of columns in the region.
func (r Region) Width() int { return r.X.Len() }

// Height returns the number of lines in the region.
func (r Region) Height() int { return r.Y.Len() }

// Empty reports whether the region contains no pixels.
func (r Region) Empty() bool {
	return r.X.Empty() || r.Y.Empty()
}

// Min returns the top-left corner of the region.
func (r Region) Min() Point {
	return Point{X: r.X.Start, Y: r.Y.Start}
}

// Max returns the bottom-right corner of the region (exclusive).
func (r Region) Max() Point {
	return Point{X: r.X.End, Y: r.Y.End}
}

// Size returns the width and height of the region as a vector.
func (r Region) Size() Point {
	return Point{X: r.Width(), Y: r.Height()}
}

// Contains reports whether p lies within the region.
func (r Region) Contains(p Point) bool {
	return r.X.Contains(p.X) && r.Y.Contains(p.Y)
}

// Intersect returns the largest region contained in both r and other.
// The result may be degenerate; see Range.Intersect.
func (r Region) Intersect(other Region) Region {
	return Region{X: r.X.Intersect(other.X), Y: r.Y.Intersect(other.Y)}
}

// Area returns the number of pixels in the region, 0 when empty.
func (r Region) Area() int {
	return r.Width() * r.Height()
}

// Union returns the smallest region containing both r and other. Empty
// regions are ignored.
func (r Region) Union(other Region) Region {
	switch {
	case r.Empty():
		return other
	case other.Empty():
		return r
	}
	return Rect(
		min(r.X.Start, other.X.Start), min(r.Y.Start, other.Y.Start),
		max(r.X.End, other.X.End), max(r.Y.End, other.Y.End),
	)
}

// IoU returns the intersection over union of two regions, in [0, 1].
// Disjoint or touching regions score 0.
func IoU(a, b Region) float32 {
	inter := a.Intersect(b).Area()
	if inter == 0 {
		return 0
	}
	return float32(inter) / float32(a.Area()+b.Area()-inter)
}

// Add translates the region by v.
func (r Region) Add(v Point) Region {
	return Region{X: r.X.Add(v.X), Y: r.Y.Add(v.Y)}
}

// Sub translates the region by -v.
func (r Region) Sub(v Point) Region {
	return Region{X: r.X.Sub(v.X), Y: r.Y.Sub(v.Y)}
}

// Clamp clips the region to bounds, collapsing non-overlapping axes to
// empty ranges.
func (r Region) Clamp(bounds Region) Region {
	return Region{
		X: r.X.Clamp(bounds.X.Start, bounds.X.End),
		Y: r.Y.Clamp(bounds.Y.Start, bounds.Y.End),
	}
}

func (r Region) String() string {
	return fmt.Sprintf("%v x %v", r.X, r.Y)
}
