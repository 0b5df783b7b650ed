// Package matraster adapts OpenCV matrices from gocv to the raster
// contracts, so frames captured or decoded by OpenCV can be filtered in
// place without copying.
package matraster

import (
	"fmt"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-raster/images"
)

// ErrUnsupportedMat is returned for matrices that cannot be viewed as an
// 8-bit single channel raster.
var ErrUnsupportedMat = errors.New("unsupported mat")

// Mat is a single-channel 8-bit gocv.Mat viewed as a MutableRaster.
//
// Mat borrows the matrix memory: it stays valid only while the underlying
// gocv.Mat is open, and writes go straight to OpenCV's buffer.
type Mat struct {
	mat  gocv.Mat
	data []uint8
	size images.Size
	step int
}

// New wraps mat.
//
// Arguments:
//   - mat: A non-empty, continuous CV_8UC1 matrix.
//
// Returns:
//   - *Mat: The raster view.
//   - error: ErrUnsupportedMat (wrapped) if the matrix is empty, has more
//     than one channel, or is not stored contiguously.
func New(mat gocv.Mat) (*Mat, error) {
	if mat.Empty() {
		return nil, errors.Wrap(ErrUnsupportedMat, "mat is empty")
	}
	if mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, errors.Wrapf(ErrUnsupportedMat, "mat type %v, expected CV_8UC1", mat.Type())
	}

	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedMat, err.Error())
	}

	return &Mat{
		mat:  mat,
		data: data,
		size: images.NewSize(mat.Cols(), mat.Rows()),
		step: mat.Step(),
	}, nil
}

// Mat returns the wrapped matrix.
func (m *Mat) Mat() gocv.Mat { return m.mat }

// Size returns the matrix columns and rows.
func (m *Mat) Size() images.Size { return m.size }

// Line returns row y of the matrix.
func (m *Mat) Line(y int) []uint8 {
	start := m.rowStart(y)
	return m.data[start : start+m.size.Width : start+m.size.Width]
}

// MutableLine returns row y of the matrix for writing.
func (m *Mat) MutableLine(y int) []uint8 {
	start := m.rowStart(y)
	return m.data[start : start+m.size.Width]
}

func (m *Mat) rowStart(y int) int {
	if y < 0 || y >= m.size.Height {
		panic(fmt.Sprintf("matraster: row %d out of range [0, %d)", y, m.size.Height))
	}
	return y * m.step
}

// FromRaster copies r into a new CV_8UC1 matrix. The caller owns the
// returned matrix and must Close it. On error the returned Mat holds no
// native memory and reports Closed.
func FromRaster(r images.Raster[uint8]) (gocv.Mat, error) {
	size := r.Size()
	if size.Area() == 0 {
		return gocv.Mat{}, errors.Wrapf(ErrUnsupportedMat, "cannot create %dx%d mat", size.Width, size.Height)
	}

	mat := gocv.NewMatWithSize(size.Height, size.Width, gocv.MatTypeCV8UC1)
	view, err := New(mat)
	if err != nil {
		mat.Close()
		return gocv.Mat{}, err
	}
	for y := 0; y < size.Height; y++ {
		copy(view.MutableLine(y), r.Line(y)[:size.Width])
	}
	return mat, nil
}
