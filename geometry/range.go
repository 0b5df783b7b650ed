// Package geometry - Integer ranges, regions and the mapping between
// source and destination raster areas.
package geometry

import "fmt"

// Range is a half-open interval [Start, End) of pixel coordinates.
//
// Coordinates are signed so that a range may be requested partially or
// fully outside a raster before it is clipped. A range with End <= Start
// is empty.
type Range struct {
	// Start is the first coordinate in the range (inclusive).
	Start int
	// End is the coordinate one past the last element (exclusive).
	End int
}

// Span returns the range [start, end).
func Span(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of coordinates in the range, zero when empty.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range contains no coordinates.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return r.Start <= v && v < r.End
}

// Intersect returns the largest range contained in both r and other.
//
// The result may be degenerate (End <= Start) when the inputs do not
// overlap; callers treat that as nothing to do.
func (r Range) Intersect(other Range) Range {
	return Range{Start: max(r.Start, other.Start), End: min(r.End, other.End)}
}

// Add translates the range by d.
func (r Range) Add(d int) Range {
	return Range{Start: r.Start + d, End: r.End + d}
}

// Sub translates the range by -d.
func (r Range) Sub(d int) Range {
	return Range{Start: r.Start - d, End: r.End - d}
}

// Clamp clips the range to [lo, hi) and collapses inverted results to an
// empty range anchored at the clipped start.
//
// It is the conversion from logical coordinates to raster coordinates:
// the result is safe to use as a slice bound whenever 0 <= lo <= hi and
// hi does not exceed the slice length.
func (r Range) Clamp(lo, hi int) Range {
	c := Range{Start: min(max(r.Start, lo), hi), End: min(max(r.End, lo), hi)}
	if c.End < c.Start {
		c.End = c.Start
	}
	return c
}

// Canon returns r with an inverted range collapsed to empty at Start.
func (r Range) Canon() Range {
	if r.End < r.Start {
		return Range{Start: r.Start, End: r.Start}
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
