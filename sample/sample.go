package sample

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordex/bucket"
	"github.com/jsphweid/chordex/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const Velocity = 100

var ErrUnordered = errors.New("bars must be in ascending order")

// Render turns a progression document into a single-track SMF where each
// chord is struck at the start of its slot and held until the slot ends.
// Chords sharing a bar split it evenly.
func Render(doc model.Document, ticksPerQuarter uint16, barsPerBeat int) (*smf.SMF, error) {
	ticksPerBar := uint64(bucket.TicksPerBar(ticksPerQuarter, barsPerBeat, 0))
	if ticksPerBar == 0 {
		return nil, bucket.ErrInvalidBarSize
	}

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("chordex"))
	if doc.BPM > 0 {
		tr.Add(0, smf.MetaTempo(float64(doc.BPM)))
	}

	var cursor uint64
	for _, bar := range doc.Progression {
		if bar.BarNum < 1 || len(bar.Chords) == 0 {
			continue
		}
		start := uint64(bar.BarNum-1) * ticksPerBar
		if start < cursor {
			return nil, fmt.Errorf("bar %d: %w", bar.BarNum, ErrUnordered)
		}
		step := ticksPerBar / uint64(len(bar.Chords))

		for i, c := range bar.Chords {
			notes, err := toNotes(c.MidiNotes)
			if err != nil {
				return nil, fmt.Errorf("bar %d: %w", bar.BarNum, err)
			}
			if len(notes) == 0 {
				continue
			}
			at := start + uint64(i)*step
			end := at + step

			for j, n := range notes {
				var delta uint64
				if j == 0 {
					delta = at - cursor
				}
				tr.Add(uint32(delta), midi.NoteOn(0, n, Velocity))
			}
			for j, n := range notes {
				var delta uint64
				if j == 0 {
					delta = end - at
				}
				tr.Add(uint32(delta), midi.NoteOff(0, n))
			}
			cursor = end
		}
	}
	tr.Close(0)

	if err := res.Add(tr); err != nil {
		return nil, err
	}
	return res, nil
}

func toNotes(nums []int) ([]uint8, error) {
	res := make([]uint8, 0, len(nums))
	for _, n := range nums {
		if n < 0 || n > 127 {
			return nil, fmt.Errorf("note %d out of range 0-127", n)
		}
		res = append(res, uint8(n))
	}
	return res, nil
}

func Write(w io.Writer, s *smf.SMF) error {
	_, err := s.WriteTo(w)
	return err
}

func WriteFile(path string, s *smf.SMF) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, s); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return f.Close()
}
