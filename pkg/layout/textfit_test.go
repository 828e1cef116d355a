package layout

import "testing"

const pangram = "The quick brown fox"

func fitShaper() stubShaper {
	return stubShaper{
		widths:  map[string]float64{"The": 30, "quick": 35, "brown": 40, "fox": 20},
		space:   5,
		ascent:  8,
		descent: -2,
	}
}

func TestFitLine_CommitsWholeWordsWithinBudget(t *testing.T) {
	fit := fitLine(fitShaper(), pangram, 16, 70, 0)
	want := Fit{Length: 9, Width: 70, Height: 10, Ascent: 8}
	if fit != want {
		t.Errorf("expected %+v, got %+v", want, fit)
	}
}

func TestFitLine_FirstWordTooWide(t *testing.T) {
	fit := fitLine(fitShaper(), pangram, 16, 20, 0)
	if fit != (Fit{}) {
		t.Errorf("expected zero fit, got %+v", fit)
	}
}

func TestFitLine_StopsAtLastFittingBoundary(t *testing.T) {
	// 30 for "The" plus 5 for the space fit; "quick" would reach 70.
	fit := fitLine(fitShaper(), pangram, 16, 60, 0)
	if fit.Length != 4 || fit.Width != 35 {
		t.Errorf("expected (4, 35), got (%d, %v)", fit.Length, fit.Width)
	}
}

func TestFitLine_RestartMatchesSuffix(t *testing.T) {
	shaper := fitShaper()
	fromOffset := fitLine(shaper, pangram, 16, 70, 10)
	standalone := fitLine(shaper, pangram[10:], 16, 70, 0)
	if fromOffset != standalone {
		t.Errorf("expected offset fit %+v to equal suffix fit %+v", fromOffset, standalone)
	}
	want := Fit{Length: 9, Width: 65, Height: 10, Ascent: 8}
	if fromOffset != want {
		t.Errorf("expected %+v, got %+v", want, fromOffset)
	}
}

func TestFitLine_OffsetAtEnd(t *testing.T) {
	fit := fitLine(fitShaper(), pangram, 16, 70, len(pangram))
	if fit != (Fit{}) {
		t.Errorf("expected zero fit at end of text, got %+v", fit)
	}
}

func TestFitLine_WhitespaceCountsTowardWidth(t *testing.T) {
	fit := fitLine(fitShaper(), "   ", 16, 70, 0)
	want := Fit{Length: 3, Width: 15, Height: 10, Ascent: 8}
	if fit != want {
		t.Errorf("expected %+v, got %+v", want, fit)
	}
}

func TestFitLine_UnboundedConsumesEverything(t *testing.T) {
	fit := fitLine(fitShaper(), pangram, 16, unboundedWidth, 0)
	want := Fit{Length: len(pangram), Width: 140, Height: 10, Ascent: 8}
	if fit != want {
		t.Errorf("expected %+v, got %+v", want, fit)
	}
}
