package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleC(t *testing.T) {
	name, octave := Name(60)
	assert := assert.New(t)
	assert.Equal("C", name)
	assert.Equal(4, octave)
	assert.Equal("C4", NoteName(60))
}

func TestExtremes(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C-1", NoteName(0))
	assert.Equal("G9", NoteName(127))
	assert.Equal("A#-1", NoteName(10))
}

func TestOctaveShiftKeepsPitchClass(t *testing.T) {
	for p := 0; p+12 <= 127; p++ {
		lo, hi := uint8(p), uint8(p+12)
		loName, loOctave := Name(lo)
		hiName, hiOctave := Name(hi)
		if loName != hiName || hiOctave != loOctave+1 {
			t.Errorf("pitch %d vs %d: %s%d vs %s%d", lo, hi, loName, loOctave, hiName, hiOctave)
		}
	}
}

func TestSharpsOnly(t *testing.T) {
	var got []string
	for pc := uint8(0); pc < 12; pc++ {
		got = append(got, PitchClassName(pc))
	}
	assert.Equal(t, []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}, got)
}

func TestNoteNamesKeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"E4", "C4", "G4"}, NoteNames([]uint8{64, 60, 67}))
	assert.Empty(t, NoteNames(nil))
}
