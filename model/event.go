package model

type Notes = []uint8

// EventKind says whether a pitch starts or stops sounding. It is decided once
// where events are decoded, so nothing downstream looks at velocity.
type EventKind uint8

const (
	Onset EventKind = iota
	Release
)

func (k EventKind) String() string {
	if k == Onset {
		return "onset"
	}
	return "release"
}

// KindFor maps a decoded note message to its kind. A note-on with velocity 0
// is a release.
func KindFor(noteOn bool, velocity uint8) EventKind {
	if noteOn && velocity > 0 {
		return Onset
	}
	return Release
}

// TrackEvent is one decoded note event. Delta is relative to the previous
// event of the same track.
type TrackEvent struct {
	Track    int
	Delta    uint32
	Kind     EventKind
	Pitch    uint8
	Velocity uint8
}

// Observation holds the pitches that began sounding during one bar, ascending
// and unique.
type Observation struct {
	Bar   int
	Notes Notes
}
