package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CompareOptions configures pixel comparison for render tests.
type CompareOptions struct {
	// Tolerance is the allowed per-channel difference (0-255).
	Tolerance int
	// MaxDiffPct passes the comparison anyway when at most this
	// percentage of pixels differ. Zero means every pixel must match.
	MaxDiffPct float64
	// DiffPath, when set, writes a highlight image on mismatch:
	// differing pixels in red over a grayscale base.
	DiffPath string
}

type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int
}

// CompareImages compares two images pixel by pixel. The images must have
// identical bounds.
func CompareImages(got, want image.Image, opts CompareOptions) (*CompareResult, error) {
	bounds := got.Bounds()
	if bounds != want.Bounds() {
		return nil, fmt.Errorf("render: image bounds differ: got %v, want %v", bounds, want.Bounds())
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
	}

	var diff *image.RGBA
	if opts.DiffPath != "" {
		diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := pixelDiff(got.At(x, y), want.At(x, y))
			if d > result.MaxDifference {
				result.MaxDifference = d
			}
			if d > opts.Tolerance {
				result.Match = false
				result.DifferentPixels++
				if diff != nil {
					diff.Set(x, y, color.RGBA{R: 255, A: 255})
				}
			} else if diff != nil {
				gray := color.GrayModel.Convert(got.At(x, y)).(color.Gray).Y
				diff.Set(x, y, color.RGBA{gray, gray, gray, 255})
			}
		}
	}

	if !result.Match && opts.MaxDiffPct > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		if pct <= opts.MaxDiffPct {
			result.Match = true
		}
	}

	if diff != nil && !result.Match {
		if err := writePNG(diff, opts.DiffPath); err != nil {
			return result, fmt.Errorf("render: save diff image: %w", err)
		}
	}

	return result, nil
}

// CompareFiles compares two PNG files.
func CompareFiles(gotPath, wantPath string, opts CompareOptions) (*CompareResult, error) {
	got, err := loadPNG(gotPath)
	if err != nil {
		return nil, err
	}
	want, err := loadPNG(wantPath)
	if err != nil {
		return nil, err
	}
	return CompareImages(got, want, opts)
}

// pixelDiff returns the largest per-channel difference between two
// pixels, in 8-bit units.
func pixelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absInt(int(ar>>8)-int(br>>8)),
		absInt(int(ag>>8)-int(bg>>8)),
		absInt(int(ab>>8)-int(bb>>8)),
		absInt(int(aa>>8)-int(ba>>8)),
	)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open image: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
