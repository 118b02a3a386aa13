package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordex/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNotMetric = errors.New("midi file does not use metric ticks")

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return ReadFrom(bytes.NewReader(dat))
}

func ReadFrom(r io.Reader) (s *smf.SMF, e error) {
	// the decoder can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("error parsing midi file: %v", r)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	return res, nil
}

// TicksPerQuarter returns the resolution of a file using metric time.
func TicksPerQuarter(s *smf.SMF) (uint16, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks.Resolution() == 0 {
		return 0, ErrNotMetric
	}
	return ticks.Resolution(), nil
}

// Events flattens the note messages of every track. The delta of a dropped
// non-note message is carried onto the next note event so cumulative tick
// positions stay intact.
func Events(s *smf.SMF) []model.TrackEvent {
	var res []model.TrackEvent
	for i, track := range s.Tracks {
		var pending uint32
		for _, event := range track {
			pending += event.Delta
			var channel, key, velocity uint8
			var kind model.EventKind
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				kind = model.KindFor(true, velocity)
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				kind = model.Release
			case event.Message.GetNoteEnd(&channel, &key):
				kind = model.Release
				velocity = 0
			default:
				continue
			}
			res = append(res, model.TrackEvent{
				Track:    i,
				Delta:    pending,
				Kind:     kind,
				Pitch:    key,
				Velocity: velocity,
			})
			pending = 0
		}
	}
	return res
}

// TrackName returns the sequence/track name meta event of a track, if any.
func TrackName(track smf.Track) string {
	for _, event := range track {
		var name string
		if event.Message.GetMetaTrackName(&name) {
			return name
		}
	}
	return ""
}
