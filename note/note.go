package note

import "fmt"

// names is indexed by pitch class. Sharps only.
var names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchClassName returns the sharp-spelled name of a pitch class (0-11).
func PitchClassName(pc uint8) string {
	return names[pc%12]
}

// Octave follows the convention where middle C (60) is in octave 4.
func Octave(pitch uint8) int {
	return int(pitch)/12 - 1
}

// Name splits a MIDI pitch (0-127) into its pitch class name and octave.
func Name(pitch uint8) (string, int) {
	return PitchClassName(pitch % 12), Octave(pitch)
}

// NoteName returns e.g. "C4" for 60 and "A#-1" for 10.
func NoteName(pitch uint8) string {
	n, o := Name(pitch)
	return fmt.Sprintf("%s%d", n, o)
}

func NoteNames(pitches []uint8) []string {
	res := make([]string, 0, len(pitches))
	for _, p := range pitches {
		res = append(res, NoteName(p))
	}
	return res
}
