// Package tensorraster views float32 tensors as rasters, so preprocessing
// filters can run directly on model input tensors.
package tensorraster

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/nvr-ai/go-raster/images"
)

// ErrUnsupportedTensor is returned for tensors that cannot be viewed as a
// float32 raster.
var ErrUnsupportedTensor = errors.New("unsupported tensor")

// Plane is a float32 [H, W] tensor, or one channel of a [C, H, W] tensor,
// viewed as a MutableRaster. It shares memory with the tensor.
type Plane struct {
	t    *tensor.Dense
	data []float32
	size images.Size
}

// New views a 2D [H, W] float32 tensor as a raster.
func New(t *tensor.Dense) (*Plane, error) {
	data, err := backing(t, 2)
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	return &Plane{t: t, data: data, size: images.NewSize(shape[1], shape[0])}, nil
}

// NewChannel views channel c of a [C, H, W] float32 tensor as a raster.
//
// Arguments:
//   - t: A dense, non-view tensor in channel-height-width order.
//   - c: The channel index, in [0, C).
//
// Returns:
//   - *Plane: The raster view of the channel plane.
//   - error: ErrUnsupportedTensor (wrapped) for other layouts or a channel
//     out of range.
func NewChannel(t *tensor.Dense, c int) (*Plane, error) {
	data, err := backing(t, 3)
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	if c < 0 || c >= shape[0] {
		return nil, errors.Wrapf(ErrUnsupportedTensor, "channel %d out of range [0, %d)", c, shape[0])
	}
	plane := shape[1] * shape[2]
	return &Plane{
		t:    t,
		data: data[c*plane : (c+1)*plane],
		size: images.NewSize(shape[2], shape[1]),
	}, nil
}

func backing(t *tensor.Dense, dims int) ([]float32, error) {
	if t == nil {
		return nil, errors.Wrap(ErrUnsupportedTensor, "tensor is nil")
	}
	if t.Dtype() != tensor.Float32 {
		return nil, errors.Wrapf(ErrUnsupportedTensor, "dtype %v, expected float32", t.Dtype())
	}
	if t.Dims() != dims {
		return nil, errors.Wrapf(ErrUnsupportedTensor, "shape %v, expected %d dimensions", t.Shape(), dims)
	}
	if t.IsView() {
		return nil, errors.Wrap(ErrUnsupportedTensor, "tensor views are not contiguous")
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.Wrap(ErrUnsupportedTensor, "tensor has no float32 backing")
	}
	return data, nil
}

// Tensor returns the tensor the plane belongs to.
func (p *Plane) Tensor() *tensor.Dense { return p.t }

// Size returns the plane width and height.
func (p *Plane) Size() images.Size { return p.size }

// Line returns row y of the plane.
func (p *Plane) Line(y int) []float32 {
	start := p.rowStart(y)
	return p.data[start : start+p.size.Width : start+p.size.Width]
}

// MutableLine returns row y of the plane for writing.
func (p *Plane) MutableLine(y int) []float32 {
	start := p.rowStart(y)
	return p.data[start : start+p.size.Width]
}

func (p *Plane) rowStart(y int) int {
	if y < 0 || y >= p.size.Height {
		panic(fmt.Sprintf("tensorraster: row %d out of range [0, %d)", y, p.size.Height))
	}
	return y * p.size.Width
}

// FromRaster copies r into a new [H, W] float32 tensor.
func FromRaster(r images.Raster[float32]) (*tensor.Dense, error) {
	size := r.Size()
	if size.Area() == 0 {
		return nil, errors.Wrapf(ErrUnsupportedTensor, "cannot create %dx%d tensor", size.Width, size.Height)
	}

	data := make([]float32, 0, size.Area())
	for y := 0; y < size.Height; y++ {
		data = append(data, r.Line(y)[:size.Width]...)
	}
	return tensor.New(tensor.WithShape(size.Height, size.Width), tensor.WithBacking(data)), nil
}
