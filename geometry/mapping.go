package geometry

// Mapping pairs an area of a source raster with an equally sized area of a
// destination raster.
//
// Both areas lie inside their raster bounds, so downstream loops can index
// the two rasters in lockstep without further checks.
type Mapping struct {
	// Src is the clipped area in source raster coordinates.
	Src Region
	// Dst is the clipped area in destination raster coordinates.
	Dst Region
	// Shift translates source coordinates into destination coordinates.
	Shift Point
}

// NewMapping reduces a requested pair of regions to the largest pair of
// equally sized, in-bounds sub-regions.
//
// Arguments:
//   - input: The requested source region, in source raster coordinates.
//   - output: The requested destination region, in destination raster
//     coordinates. Its origin determines the shift between the rasters.
//   - inputBounds: The full extent of the source raster.
//   - outputBounds: The full extent of the destination raster.
//
// Returns:
//   - Mapping: Src and Dst always have equal width and height. When the
//     regions do not overlap their rasters both are empty and the mapping
//     must be treated as a no-op.
func NewMapping(input, output, inputBounds, outputBounds Region) Mapping {
	shift := output.Min().Sub(input.Min())

	src := input.
		Intersect(inputBounds).
		Intersect(outputBounds.Sub(shift)).
		Intersect(output.Sub(shift))

	if src.Empty() {
		src = Region{
			X: Span(src.X.Start, src.X.Start),
			Y: Span(src.Y.Start, src.Y.Start),
		}
	}

	return Mapping{Src: src, Dst: src.Add(shift), Shift: shift}
}

// Empty reports whether the mapping covers no pixels.
func (m Mapping) Empty() bool {
	return m.Src.Empty()
}
