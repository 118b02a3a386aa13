package model

import "github.com/jsphweid/chordex/note"

// Quality is a catalog entry. The zero value means the pitch set did not
// match anything.
type Quality struct {
	Name      string
	Suffix    string
	Intervals []uint8
}

func (q Quality) Matched() bool {
	return q.Name != ""
}

type ChordSymbol struct {
	Root    uint8
	Quality Quality
	Bass    uint8
	Notes   Notes
}

func (c ChordSymbol) RootName() string {
	return note.PitchClassName(c.Root)
}

func (c ChordSymbol) Inverted() bool {
	return c.Bass != c.Root
}

// Symbol renders e.g. "Cm7" or "C/E".
func (c ChordSymbol) Symbol() string {
	s := c.RootName() + c.Quality.Suffix
	if c.Inverted() {
		s += "/" + note.PitchClassName(c.Bass)
	}
	return s
}
