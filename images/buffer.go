package images

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSizeMismatch is returned when pixel data does not match the declared
// raster layout.
var ErrSizeMismatch = errors.New("pixel data does not match raster layout")

// Layout describes how a buffer stores its pixels.
type Layout struct {
	// Size is the visible width and height.
	Size Size
	// Stride is the allocated line length, which can be larger than the
	// width to keep lines aligned. Stride >= Size.Width.
	Stride int
}

// DenseLayout returns the layout of size with no line padding.
func DenseLayout(size Size) Layout {
	return Layout{Size: size, Stride: size.Width}
}

// DataLength returns the number of allocated pixels.
func (l Layout) DataLength() int {
	return l.Size.Height * l.Stride
}

// Validate checks that the layout is well formed and that dataLength
// pixels exactly fill it.
func (l Layout) Validate(dataLength int) error {
	if l.Size.Width < 0 || l.Size.Height < 0 {
		return errors.Errorf("invalid raster size %dx%d", l.Size.Width, l.Size.Height)
	}
	if l.Stride < l.Size.Width {
		return errors.Errorf("stride %d is smaller than width %d", l.Stride, l.Size.Width)
	}
	if dataLength != l.DataLength() {
		return errors.Wrapf(ErrSizeMismatch,
			"slice of length %d cannot be used as a %dx%d raster with stride %d, expected length %d",
			dataLength, l.Size.Width, l.Size.Height, l.Stride, l.DataLength())
	}
	return nil
}

// Buffer stores raster pixels line by line in one contiguous slice.
//
// Buffer implements MutableRaster. Its size is fixed at construction.
type Buffer[T any] struct {
	layout Layout
	pixels []T
}

// NewBuffer allocates a zero valued buffer of the given size.
func NewBuffer[T any](size Size) *Buffer[T] {
	return NewBufferStride[T](DenseLayout(size))
}

// NewBufferStride allocates a zero valued buffer with an explicit layout.
// It panics if the layout is malformed.
func NewBufferStride[T any](layout Layout) *Buffer[T] {
	if err := layout.Validate(layout.DataLength()); err != nil {
		panic(err)
	}
	return &Buffer[T]{layout: layout, pixels: make([]T, layout.DataLength())}
}

// NewBufferFilled allocates a buffer of the given size with every pixel
// set to value.
func NewBufferFilled[T any](size Size, value T) *Buffer[T] {
	b := NewBuffer[T](size)
	for i := range b.pixels {
		b.pixels[i] = value
	}
	return b
}

// Sized is anything that reports a raster size.
type Sized interface {
	Size() Size
}

// NewBufferLike allocates a zero valued buffer with the size of r.
func NewBufferLike[T any](r Sized) *Buffer[T] {
	return NewBuffer[T](r.Size())
}

// FromSlice wraps densely packed pixel data.
//
// Arguments:
//   - size: The raster width and height.
//   - data: Pixels in line order; len(data) must equal width*height.
//
// Returns:
//   - *Buffer[T]: A buffer that takes ownership of data.
//   - error: ErrSizeMismatch (wrapped) if the length does not match.
func FromSlice[T any](size Size, data []T) (*Buffer[T], error) {
	return FromSliceStride(DenseLayout(size), data)
}

// FromSliceStride wraps pixel data laid out with an explicit stride. The
// buffer takes ownership of data.
func FromSliceStride[T any](layout Layout, data []T) (*Buffer[T], error) {
	if err := layout.Validate(len(data)); err != nil {
		return nil, err
	}
	return &Buffer[T]{layout: layout, pixels: data}, nil
}

// MustFromSlice is like FromSlice but panics on error. It is intended for
// literals in tests and examples.
func MustFromSlice[T any](size Size, data []T) *Buffer[T] {
	b, err := FromSlice(size, data)
	if err != nil {
		panic(err)
	}
	return b
}

// Size returns the width and height of the buffer.
func (b *Buffer[T]) Size() Size { return b.layout.Size }

// Layout returns the buffer layout.
func (b *Buffer[T]) Layout() Layout { return b.layout }

// Pixels returns the underlying storage, including line padding.
func (b *Buffer[T]) Pixels() []T { return b.pixels }

// Line returns the visible pixels of line y.
func (b *Buffer[T]) Line(y int) []T {
	start := b.lineStart(y)
	return b.pixels[start : start+b.layout.Size.Width : start+b.layout.Size.Width]
}

// MutableLine returns the visible pixels of line y for writing.
func (b *Buffer[T]) MutableLine(y int) []T {
	start := b.lineStart(y)
	return b.pixels[start : start+b.layout.Size.Width]
}

// At returns the pixel at (x, y).
func (b *Buffer[T]) At(x, y int) T {
	return b.Line(y)[x]
}

// Set stores value at (x, y).
func (b *Buffer[T]) Set(x, y int, value T) {
	b.MutableLine(y)[x] = value
}

// Clone returns a deep copy of the buffer with the same layout.
func (b *Buffer[T]) Clone() *Buffer[T] {
	pixels := make([]T, len(b.pixels))
	copy(pixels, b.pixels)
	return &Buffer[T]{layout: b.layout, pixels: pixels}
}

// Fill sets every pixel, including padding, to value.
func (b *Buffer[T]) Fill(value T) {
	for i := range b.pixels {
		b.pixels[i] = value
	}
}

func (b *Buffer[T]) lineStart(y int) int {
	if y < 0 || y >= b.layout.Size.Height {
		panic(fmt.Sprintf("images: line %d out of range [0, %d)", y, b.layout.Size.Height))
	}
	return y * b.layout.Stride
}
