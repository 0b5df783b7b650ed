package images

import (
	"fmt"
	"math"
	"strings"
)

// AspectRatio names a frame aspect ratio, e.g. "16:9".
type AspectRatio string

// Common camera aspect ratios.
const (
	AspectRatio169 AspectRatio = "16:9"
	AspectRatio43  AspectRatio = "4:3"
	AspectRatio54  AspectRatio = "5:4"
	AspectRatio32  AspectRatio = "3:2"
	AspectRatio179 AspectRatio = "17:9"
)

// ResolutionType names a camera resolution standard.
type ResolutionType string

// Resolution standards, smallest first.
const (
	ResolutionTypeNHD      ResolutionType = "nHD"
	ResolutionTypeFWVGA    ResolutionType = "FWVGA"
	ResolutionTypeQHD540   ResolutionType = "qHD 540p"
	ResolutionTypeHD720p   ResolutionType = "HD 720p"
	ResolutionTypeWXGA     ResolutionType = "WXGA"
	ResolutionType1MP54    ResolutionType = "1MP (5:4)"
	ResolutionTypeHDPlus   ResolutionType = "HD+"
	ResolutionType2MP43    ResolutionType = "2MP (4:3)"
	ResolutionTypeFHD1080p ResolutionType = "Full HD 1080p"
	ResolutionType3MP43    ResolutionType = "3MP (4:3)"
	ResolutionTypeQHD1440p ResolutionType = "QHD 1440p"
	ResolutionType4MP169   ResolutionType = "4MP (16:9)"
	ResolutionTypeQHDPlus  ResolutionType = "QHD+"
	ResolutionType6MP32    ResolutionType = "6MP (3:2)"
	ResolutionType4KUHD    ResolutionType = "4K UHD"
	ResolutionType12MP     ResolutionType = "12MP (4:3)"
	ResolutionType5K       ResolutionType = "5K"
	ResolutionType8KUHD    ResolutionType = "8K UHD"
	ResolutionType16KUHD   ResolutionType = "16K UHD"
)

// Resolution is a named frame size.
type Resolution struct {
	Name        ResolutionType `json:"name" yaml:"name"`
	Alias       string         `json:"alias,omitempty" yaml:"alias,omitempty"`
	AspectRatio AspectRatio    `json:"aspectRatio" yaml:"aspectRatio"`
	Size        Size           `json:"size" yaml:"size"`
	// Experimental marks sizes no camera ships yet.
	Experimental bool `json:"experimental" yaml:"experimental"`
}

// MegaPixels returns the pixel count in millions, rounded to two decimals.
func (r Resolution) MegaPixels() float64 {
	if r.Size.Width <= 0 || r.Size.Height <= 0 {
		return 0
	}
	return math.Round(float64(r.Size.Area())/10_000) / 100
}

func (r Resolution) String() string {
	return fmt.Sprintf("%s (%dx%d, %.2fMP)", r.Name, r.Size.Width, r.Size.Height, r.MegaPixels())
}

// resolutions is ordered by increasing area.
var resolutions = []Resolution{
	{Name: ResolutionTypeNHD, Alias: "360p", AspectRatio: AspectRatio169, Size: Size{640, 360}},
	{Name: ResolutionTypeFWVGA, Alias: "480p", AspectRatio: AspectRatio169, Size: Size{854, 480}},
	{Name: ResolutionTypeQHD540, Alias: "540p", AspectRatio: AspectRatio169, Size: Size{960, 540}},
	{Name: ResolutionTypeHD720p, Alias: "720p", AspectRatio: AspectRatio169, Size: Size{1280, 720}},
	{Name: ResolutionTypeWXGA, AspectRatio: AspectRatio169, Size: Size{1366, 768}},
	{Name: ResolutionType1MP54, Alias: "1mp", AspectRatio: AspectRatio54, Size: Size{1280, 1024}},
	{Name: ResolutionTypeHDPlus, Alias: "900p", AspectRatio: AspectRatio169, Size: Size{1600, 900}},
	{Name: ResolutionType2MP43, AspectRatio: AspectRatio43, Size: Size{1600, 1200}},
	{Name: ResolutionTypeFHD1080p, Alias: "1080p", AspectRatio: AspectRatio169, Size: Size{1920, 1080}},
	{Name: ResolutionType3MP43, Alias: "3mp", AspectRatio: AspectRatio43, Size: Size{2048, 1536}},
	{Name: ResolutionTypeQHD1440p, Alias: "1440p", AspectRatio: AspectRatio169, Size: Size{2560, 1440}},
	{Name: ResolutionType4MP169, Alias: "4mp", AspectRatio: AspectRatio169, Size: Size{2688, 1520}},
	{Name: ResolutionTypeQHDPlus, AspectRatio: AspectRatio179, Size: Size{3200, 1800}},
	{Name: ResolutionType6MP32, Alias: "6mp", AspectRatio: AspectRatio32, Size: Size{3072, 2048}},
	{Name: ResolutionType4KUHD, Alias: "4k", AspectRatio: AspectRatio169, Size: Size{3840, 2160}},
	{Name: ResolutionType12MP, Alias: "12mp", AspectRatio: AspectRatio43, Size: Size{4000, 3000}},
	{Name: ResolutionType5K, Alias: "5k", AspectRatio: AspectRatio169, Size: Size{5120, 2880}},
	{Name: ResolutionType8KUHD, Alias: "8k", AspectRatio: AspectRatio169, Size: Size{7680, 4320}},
	{Name: ResolutionType16KUHD, Alias: "16k", AspectRatio: AspectRatio169, Size: Size{15360, 8640}, Experimental: true},
}

// Resolutions returns the known resolutions ordered by increasing area.
// Experimental ones are included only when experimental is true.
func Resolutions(experimental bool) []Resolution {
	out := make([]Resolution, 0, len(resolutions))
	for _, r := range resolutions {
		if experimental || !r.Experimental {
			out = append(out, r)
		}
	}
	return out
}

// LookupResolution finds a resolution by name or alias, ignoring case.
func LookupResolution(name string) (Resolution, bool) {
	for _, r := range resolutions {
		if strings.EqualFold(string(r.Name), name) || (r.Alias != "" && strings.EqualFold(r.Alias, name)) {
			return r, true
		}
	}
	return Resolution{}, false
}

// LargestResolutionWithin returns the largest non-experimental resolution
// that fits inside bounds in both dimensions.
//
// Arguments:
//   - bounds: The maximum width and height.
//
// Returns:
//   - Resolution: The largest fitting resolution.
//   - bool: False if not even the smallest resolution fits.
func LargestResolutionWithin(bounds Size) (Resolution, bool) {
	var (
		best  Resolution
		found bool
	)
	for _, r := range resolutions {
		if r.Experimental || r.Size.Width > bounds.Width || r.Size.Height > bounds.Height {
			continue
		}
		if !found || r.Size.Area() > best.Size.Area() {
			best, found = r, true
		}
	}
	return best, found
}
