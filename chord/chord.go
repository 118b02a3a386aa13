package chord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/chordex/model"
	"golang.org/x/exp/slices"
)

var ErrNoNotes = errors.New("chord has no notes")

// catalog is checked in order and the first exact interval-set match wins.
// The sets are pairwise distinct so the order only keeps results stable.
var catalog = []model.Quality{
	{Name: "minor triad", Suffix: "m", Intervals: []uint8{0, 3, 7}},
	{Name: "major triad", Suffix: "", Intervals: []uint8{0, 4, 7}},
	{Name: "diminished triad", Suffix: "dim", Intervals: []uint8{0, 3, 6}},
	{Name: "augmented triad", Suffix: "aug", Intervals: []uint8{0, 4, 8}},
	{Name: "suspended-4th", Suffix: "sus4", Intervals: []uint8{0, 5, 7}},
	{Name: "suspended-2nd", Suffix: "sus2", Intervals: []uint8{0, 2, 7}},
	{Name: "dominant 7th", Suffix: "7", Intervals: []uint8{0, 4, 7, 10}},
	{Name: "major 7th", Suffix: "maj7", Intervals: []uint8{0, 4, 7, 11}},
	{Name: "minor 7th", Suffix: "m7", Intervals: []uint8{0, 3, 7, 10}},
}

var catalogMasks = func() []uint16 {
	masks := make([]uint16, len(catalog))
	for i, q := range catalog {
		for _, iv := range q.Intervals {
			masks[i] |= 1 << iv
		}
	}
	return masks
}()

func Catalog() []model.Quality {
	return slices.Clone(catalog)
}

// CreateChordKey joins the ascending notes with dashes, e.g. "60-64-67".
func CreateChordKey(notes []uint8) string {
	sorted := slices.Clone(notes)
	slices.Sort(sorted)
	parts := make([]string, 0, len(sorted))
	for _, n := range sorted {
		parts = append(parts, fmt.Sprintf("%v", n))
	}
	return strings.Join(parts, "-")
}

func normalize(pitches []uint8) []uint8 {
	res := slices.Clone(pitches)
	slices.Sort(res)
	return slices.Compact(res)
}

// IntervalSet returns the pitch-class distances of every note from the
// lowest one as a bitmask; bit i set means interval i is present.
func IntervalSet(pitches []uint8) uint16 {
	if len(pitches) == 0 {
		return 0
	}
	root := pitches[0]
	for _, p := range pitches {
		if p < root {
			root = p
		}
	}
	var mask uint16
	for _, p := range pitches {
		mask |= 1 << ((p - root) % 12)
	}
	return mask
}

// Match looks an interval set up in the catalog.
func Match(intervals uint16) (model.Quality, bool) {
	for i, m := range catalogMasks {
		if m == intervals {
			return catalog[i], true
		}
	}
	return model.Quality{}, false
}

// Classify names the chord formed by pitches. The root is always the lowest
// pitch, so the result is never an inversion. Sets that match nothing in the
// catalog come back with an empty quality and just the root as symbol.
func Classify(pitches []uint8) (model.ChordSymbol, error) {
	notes := normalize(pitches)
	if len(notes) == 0 {
		return model.ChordSymbol{}, ErrNoNotes
	}
	root := notes[0] % 12
	return classify(notes, root), nil
}

// ClassifyWithBass is Classify with an externally known bass note. The chord
// is labelled as an inversion when bass lands on a different pitch class
// than the root.
func ClassifyWithBass(pitches []uint8, bass uint8) (model.ChordSymbol, error) {
	notes := normalize(pitches)
	if len(notes) == 0 {
		return model.ChordSymbol{}, ErrNoNotes
	}
	return classify(notes, bass%12), nil
}

func classify(notes []uint8, bass uint8) model.ChordSymbol {
	quality, _ := Match(IntervalSet(notes))
	return model.ChordSymbol{
		Root:    notes[0] % 12,
		Quality: quality,
		Bass:    bass,
		Notes:   notes,
	}
}
