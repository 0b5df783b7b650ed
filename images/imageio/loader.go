package imageio

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-raster/images"
)

// File represents an image file.
type File struct {
	// Path is the path to the image file.
	Path string
	// Format is the codec picked from the extension.
	Format Format
	// Data is the raw bytes of the image file.
	Data []byte
	// Frame is the number at the end of the file name, or -1 if there is
	// none.
	Frame int
}

// Decode decodes the file contents to a gray buffer.
func (f File) Decode() (*images.Buffer[uint8], error) {
	buf, err := DecodeBytes(f.Data, f.Format)
	return buf, errors.Wrap(err, f.Path)
}

// LoadDirectory reads all image files from a directory.
//
// Files are ordered by frame number, so "frame-2.png" comes before
// "frame-10.png". Names without a trailing number sort after numbered ones,
// by path. Subdirectories and files with other extensions are skipped.
//
// Arguments:
//   - dir: Directory path containing image files.
//
// Returns:
//   - []File: One entry per image file with its raw bytes.
//   - error: Error if the directory or a file cannot be read.
func LoadDirectory(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, err := FormatFromPath(entry.Name())
		if err != nil {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		files = append(files, File{
			Path:   path,
			Format: format,
			Data:   data,
			Frame:  frameNumber(entry.Name()),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if (a.Frame < 0) != (b.Frame < 0) {
			return b.Frame < 0
		}
		if a.Frame != b.Frame {
			return a.Frame < b.Frame
		}
		return a.Path < b.Path
	})

	images.Logger().Debug("loaded directory", "dir", dir, "files", len(files))
	return files, nil
}

func frameNumber(name string) int {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	i := len(stem)
	for i > 0 && unicode.IsDigit(rune(stem[i-1])) {
		i--
	}
	if i == len(stem) {
		return -1
	}
	n, err := strconv.Atoi(stem[i:])
	if err != nil {
		return -1
	}
	return n
}
