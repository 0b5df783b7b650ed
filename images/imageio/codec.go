package imageio

import (
	"bytes"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/nvr-ai/go-raster/images"
)

// DefaultQuality is the JPEG and lossy WebP quality used when Options
// leaves it unset.
const DefaultQuality = 90

// Options tunes encoding.
type Options struct {
	// Quality is the lossy quality in [1, 100]. Zero means DefaultQuality.
	Quality int `json:"quality" yaml:"quality"`
	// Lossless selects lossless WebP. Ignored by the other formats.
	Lossless bool `json:"lossless" yaml:"lossless"`
}

func (o *Options) quality() int {
	if o == nil || o.Quality <= 0 {
		return DefaultQuality
	}
	if o.Quality > 100 {
		return 100
	}
	return o.Quality
}

// Decode reads an image of the given format and converts it to 8-bit gray.
func Decode(r io.Reader, format Format) (*images.Buffer[uint8], error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "decode %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", format)
	}
	return FromImage(img), nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte, format Format) (*images.Buffer[uint8], error) {
	if len(data) == 0 {
		return nil, errors.Errorf("empty %s data", format)
	}
	return Decode(bytes.NewReader(data), format)
}

// Load reads the image at path, picking the codec from the extension.
func Load(path string) (*images.Buffer[uint8], error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	buf, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	images.Logger().Debug("loaded image", "path", path, "format", format, "width", buf.Size().Width, "height", buf.Size().Height)
	return buf, nil
}

// Encode writes img in the given format.
func Encode(w io.Writer, img images.Raster[uint8], format Format, opt *Options) error {
	gray := ToImage(img)

	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, gray, &jpeg.Options{Quality: opt.quality()})
	case FormatPNG:
		err = png.Encode(w, gray)
	case FormatWebP:
		err = webp.Encode(w, gray, &webp.Options{
			Lossless: opt != nil && opt.Lossless,
			Quality:  float32(opt.quality()),
		})
	case FormatBMP:
		err = bmp.Encode(w, gray)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "encode %q", format)
	}
	return errors.Wrapf(err, "failed to encode %s", format)
}

// Save writes img to path, picking the codec from the extension.
func Save(path string, img images.Raster[uint8], opt *Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opt); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// FromImage converts any image to an 8-bit gray buffer using the
// luminance weights of color.GrayModel.
func FromImage(img image.Image) *images.Buffer[uint8] {
	b := img.Bounds()
	gray, ok := img.(*image.Gray)
	if !ok {
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
		b = gray.Rect
	}

	out := images.NewBuffer[uint8](images.NewSize(b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		start := gray.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.MutableLine(y), gray.Pix[start:start+b.Dx()])
	}
	return out
}

// ToImage copies r into a new *image.Gray.
func ToImage(r images.Raster[uint8]) *image.Gray {
	size := r.Size()
	gray := image.NewGray(image.Rect(0, 0, size.Width, size.Height))
	for y := 0; y < size.Height; y++ {
		copy(gray.Pix[y*gray.Stride:], r.Line(y)[:size.Width])
	}
	return gray
}
