package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-raster/geometry"
	"github.com/nvr-ai/go-raster/images"
	"github.com/nvr-ai/go-raster/images/filter"
)

func frameWith(size images.Size, squares ...geometry.Region) *images.Buffer[uint8] {
	frame := images.NewBuffer[uint8](size)
	for _, sq := range squares {
		filter.UpdateRegion(frame, sq, func(uint8) uint8 { return 200 })
	}
	return frame
}

func testOptions() Options {
	return Options{
		Threshold:    25,
		BlurRadius:   1,
		DilateRadius: 1,
		LearningRate: 1,
	}
}

func TestSegmenterSeedsBackground(t *testing.T) {
	seg, err := NewSegmenter(testOptions())
	require.NoError(t, err)

	blobs, err := seg.Segment(frameWith(images.NewSize(40, 30)))
	require.NoError(t, err)
	assert.Empty(t, blobs)
	assert.Nil(t, seg.Mask())

	blobs, err = seg.Segment(frameWith(images.NewSize(40, 30)))
	require.NoError(t, err)
	assert.Empty(t, blobs, "static scene")
	require.NotNil(t, seg.Mask())
	assert.Equal(t, images.NewSize(40, 30), seg.Mask().Size())
}

func TestSegmenterFindsMovingSquare(t *testing.T) {
	size := images.NewSize(40, 30)
	seg, err := NewSegmenter(testOptions())
	require.NoError(t, err)

	_, err = seg.Segment(frameWith(size))
	require.NoError(t, err)
	blobs, err := seg.Segment(frameWith(size, geometry.Rect(10, 10, 18, 18)))
	require.NoError(t, err)

	require.Len(t, blobs, 1)
	// Blurring spreads the square one pixel past its edges, minus the
	// corners, and dilation adds one more pixel on every side.
	assert.Equal(t, geometry.Rect(8, 8, 20, 20), blobs[0].Region)
	assert.Greater(t, blobs[0].Area, 64)
	assert.LessOrEqual(t, blobs[0].Area, blobs[0].Region.Area())
	assert.True(t, Detect(blobs, 64))
	assert.False(t, Detect(blobs, blobs[0].Area+1))

	assert.Equal(t, uint8(255), seg.Mask().Line(14)[14])
	assert.Equal(t, uint8(0), seg.Mask().Line(0)[0])

	// With a learning rate of 1 the square is now background.
	blobs, err = seg.Segment(frameWith(size, geometry.Rect(10, 10, 18, 18)))
	require.NoError(t, err)
	assert.Empty(t, blobs)
}

func TestSegmenterSeparatesAndFilters(t *testing.T) {
	size := images.NewSize(60, 30)
	opt := testOptions()
	seg, err := NewSegmenter(opt)
	require.NoError(t, err)

	_, err = seg.Segment(frameWith(size))
	require.NoError(t, err)
	big, small := geometry.Rect(5, 5, 20, 20), geometry.Rect(40, 10, 44, 14)
	blobs, err := seg.Segment(frameWith(size, big, small))
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	assert.Greater(t, blobs[0].Area, blobs[1].Area, "largest first")
	assert.Equal(t, big, blobs[0].Region.Intersect(big))
	assert.Equal(t, small, blobs[1].Region.Intersect(small))

	opt.MinimumArea = blobs[1].Area + 1
	seg, err = NewSegmenter(opt)
	require.NoError(t, err)
	_, err = seg.Segment(frameWith(size))
	require.NoError(t, err)
	blobs, err = seg.Segment(frameWith(size, big, small))
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.Equal(t, big, blobs[0].Region.Intersect(big))
}

func TestSegmenterSlowBackground(t *testing.T) {
	opt := testOptions()
	opt.LearningRate = 0.5
	seg, err := NewSegmenter(opt)
	require.NoError(t, err)

	size := images.NewSize(20, 20)
	square := geometry.Rect(5, 5, 15, 15)
	_, err = seg.Segment(frameWith(size))
	require.NoError(t, err)

	// The background moves halfway to the square each frame, so the
	// difference halves: 200, 100, 50, 25.
	for i, moving := range []bool{true, true, true, false} {
		blobs, err := seg.Segment(frameWith(size, square))
		require.NoError(t, err)
		assert.Equal(t, moving, len(blobs) > 0, "frame %d", i)
	}
}

func TestSegmenterResetsOnSizeChange(t *testing.T) {
	seg, err := NewSegmenter(testOptions())
	require.NoError(t, err)

	_, err = seg.Segment(frameWith(images.NewSize(10, 10)))
	require.NoError(t, err)
	blobs, err := seg.Segment(frameWith(images.NewSize(12, 10), geometry.Rect(0, 0, 5, 5)))
	require.NoError(t, err)
	assert.Empty(t, blobs, "a new size seeds a new background")
	assert.Nil(t, seg.Mask())

	seg.Reset()
	blobs, err = seg.Segment(frameWith(images.NewSize(12, 10), geometry.Rect(0, 0, 5, 5)))
	require.NoError(t, err)
	assert.Empty(t, blobs)
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	for name, mutate := range map[string]func(*Options){
		"negative blur":   func(o *Options) { o.BlurRadius = -1 },
		"negative dilate": func(o *Options) { o.DilateRadius = -1 },
		"negative area":   func(o *Options) { o.MinimumArea = -1 },
		"zero rate":       func(o *Options) { o.LearningRate = 0 },
		"rate above one":  func(o *Options) { o.LearningRate = 1.5 },
		"iou above one":   func(o *Options) { o.MergeIoU = 2 },
	} {
		t.Run(name, func(t *testing.T) {
			opt := DefaultOptions()
			mutate(&opt)
			_, err := NewSegmenter(opt)
			assert.Error(t, err)
		})
	}
}

func TestBlobsConnectivity(t *testing.T) {
	mask := images.MustFromSlice(images.NewSize(6, 4), []uint8{
		1, 1, 0, 0, 0, 0,
		0, 1, 0, 0, 9, 9,
		0, 0, 1, 0, 9, 0,
		0, 0, 0, 0, 0, 0,
	})

	blobs, err := Blobs(mask, 0)
	require.NoError(t, err)
	require.Len(t, blobs, 3, "diagonal neighbours are separate blobs")
	assert.Equal(t, Blob{Region: geometry.Rect(0, 0, 2, 2), Area: 3}, blobs[0])
	assert.Equal(t, Blob{Region: geometry.Rect(4, 1, 6, 3), Area: 3}, blobs[1])
	assert.Equal(t, Blob{Region: geometry.Rect(2, 2, 3, 3), Area: 1}, blobs[2])

	large, err := Blobs(mask, 2)
	require.NoError(t, err)
	assert.Len(t, large, 2)

	empty, err := Blobs(images.NewBuffer[uint8](images.NewSize(0, 0)), 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, []geometry.Region{geometry.Rect(0, 0, 2, 2), geometry.Rect(4, 1, 6, 3), geometry.Rect(2, 2, 3, 3)}, Regions(blobs))
}

func TestMerge(t *testing.T) {
	blobs := []Blob{
		{Region: geometry.Rect(0, 0, 10, 10), Area: 80},
		{Region: geometry.Rect(5, 0, 15, 10), Area: 60},
		{Region: geometry.Rect(30, 30, 35, 35), Area: 20},
	}

	merged := Merge(blobs, 0.3)
	require.Len(t, merged, 2)
	assert.Equal(t, Blob{Region: geometry.Rect(0, 0, 15, 10), Area: 140}, merged[0])
	assert.Equal(t, blobs[2], merged[1])

	assert.Len(t, Merge(blobs, 0.5), 3, "IoU of the first pair is 1/3")
	assert.Len(t, blobs, 3, "input is not modified")
}
