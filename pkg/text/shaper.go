package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Glyph is one positioned glyph produced by shaping.
type Glyph struct {
	// Cluster is the index of the first rune this glyph covers,
	// counted from the start of the shaped string.
	Cluster int
	// Advance is the horizontal advance in pixels. Never negative; a
	// rune the face cannot map keeps its slot with a zero advance.
	Advance float64
}

// Run is the shaped form of one string at one size.
type Run struct {
	Glyphs []Glyph
	// Ascent is the distance from the baseline to the top of the line.
	Ascent float64
	// Descent is the distance from the baseline to the bottom of the
	// line, negative below the baseline.
	Descent float64
}

// Advance returns the total horizontal advance of the run.
func (r Run) Advance() float64 {
	var w float64
	for _, g := range r.Glyphs {
		w += g.Advance
	}
	return w
}

// PrefixAdvance returns the advance of the glyphs covering the first n
// runes of the shaped string.
func (r Run) PrefixAdvance(n int) float64 {
	var w float64
	for _, g := range r.Glyphs {
		if g.Cluster < n {
			w += g.Advance
		}
	}
	return w
}

// Height returns the line height of the run.
func (r Run) Height() float64 {
	return r.Ascent - r.Descent
}

// Shaper turns a string into positioned glyphs with line metrics.
// Implementations must be safe for repeated calls from a single
// goroutine; the layout engine never shapes concurrently.
type Shaper interface {
	Shape(text string, size float64) Run
}

// FontShaper shapes text with HarfBuzz against a single face.
type FontShaper struct {
	face *font.Face

	mu  sync.Mutex // the harfbuzz shaper and segmenter reuse internal buffers
	seg shaping.Segmenter
	hb  shaping.HarfbuzzShaper
}

// NewFontShaper returns a Shaper that shapes every run with face.
func NewFontShaper(face *font.Face) *FontShaper {
	return &FontShaper{face: face}
}

// Shape shapes text left to right at the given pixel size.
func (s *FontShaper) Shape(text string, size float64) Run {
	runes := []rune(text)
	if len(runes) == 0 {
		return Run{}
	}
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      s.face,
		Size:      fixed.Int26_6(size * 64),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var run Run
	for _, segment := range s.seg.Split(in, fixedFontmap{s.face}) {
		out := s.hb.Shape(segment)
		if a := fromFixed(out.LineBounds.Ascent); a > run.Ascent {
			run.Ascent = a
		}
		if d := fromFixed(out.LineBounds.Descent); d < run.Descent {
			run.Descent = d
		}
		for _, g := range out.Glyphs {
			adv := fromFixed(g.XAdvance)
			if adv < 0 {
				adv = 0
			}
			run.Glyphs = append(run.Glyphs, Glyph{Cluster: g.ClusterIndex, Advance: adv})
		}
	}
	return run
}

// fixedFontmap resolves every rune to the same face.
type fixedFontmap struct {
	face *font.Face
}

func (m fixedFontmap) ResolveFace(rune) *font.Face { return m.face }

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
