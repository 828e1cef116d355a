package layout

import (
	"unicode/utf8"

	"mondrian/pkg/text"
)

// unboundedWidth is the effectively infinite budget used to measure
// unwrapped text and to force oversized words onto a line of their own.
const unboundedWidth = 1e9

// Fit is the outcome of fitting words from a text run into a width
// budget.
type Fit struct {
	// Length is the number of bytes consumed from the start offset.
	// Zero means the first word alone exceeded the budget.
	Length int
	// Width is the shaped advance of the consumed run.
	Width float64
	// Height and Ascent are the line metrics of the consumed run.
	Height float64
	Ascent float64
}

// fitLine greedily commits word segments of s[offset:] while their
// cumulative shaped advance stays within width. Whitespace segments
// commit like words, so inter-word spaces count toward the measured
// width; a segment that would push past the budget stops the scan at
// the previous boundary. Fitting from an intermediate offset behaves
// exactly like fitting the suffix on its own.
func fitLine(shaper text.Shaper, s string, size, width float64, offset int) Fit {
	rest := s[offset:]
	run := shaper.Shape(rest, size)

	var fit Fit
	runeEnd := 0
	for _, seg := range text.Segments(rest) {
		runeEnd += utf8.RuneCountInString(rest[seg.Start:seg.End])
		advance := run.PrefixAdvance(runeEnd)
		if advance > width {
			break
		}
		fit.Length = seg.End
		fit.Width = advance
		fit.Height = run.Height()
		fit.Ascent = run.Ascent
	}
	return fit
}
