// Package imageio - Reading and writing gray rasters in common image
// formats, directory loading and smooth resizing.
package imageio

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for formats without a codec.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format represents supported image formats.
type Format string

// Format constants
const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG Format = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG Format = "png"
	// FormatWebP is the WebP image format.
	FormatWebP Format = "webp"
	// FormatBMP is the BMP image format.
	FormatBMP Format = "bmp"
)

var extensions = map[string]Format{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".webp": FormatWebP,
	".bmp":  FormatBMP,
}

// FormatFromPath picks the format from the file extension, ignoring case.
//
// Arguments:
//   - path: The file path or name.
//
// Returns:
//   - Format: The matching format.
//   - error: ErrUnsupportedFormat (wrapped) for unknown extensions.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
}

// Valid reports whether f has a codec.
func (f Format) Valid() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatWebP, FormatBMP:
		return true
	}
	return false
}

func (f Format) String() string { return string(f) }
