package text

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Segment is one word-boundary segment of a string. Segments tile the
// source string: each byte belongs to exactly one segment, and
// whitespace between words forms segments of its own.
type Segment struct {
	Start int // byte offset of the first byte
	End   int // byte offset one past the last byte
	Space bool
}

// Segments splits s on Unicode word boundaries (UAX #29). Runs of
// horizontal whitespace stay together as single segments.
func Segments(s string) []Segment {
	var segs []Segment
	state := -1
	off := 0
	for len(s) > 0 {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		segs = append(segs, Segment{
			Start: off,
			End:   off + len(word),
			Space: spaceOnly(word),
		})
		off += len(word)
	}
	return segs
}

func spaceOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// SkipSpace returns the smallest offset at or after start where s does
// not begin with whitespace. Returns len(s) when only whitespace
// remains.
func SkipSpace(s string, start int) int {
	for start < len(s) {
		r, size := utf8.DecodeRuneInString(s[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	return start
}
