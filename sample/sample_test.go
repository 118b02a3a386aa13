package sample

import (
	"bytes"
	"testing"

	"github.com/jsphweid/chordex/bucket"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(bars ...[]int) model.Document {
	d := model.Document{Version: "3.0", BPM: 120, LoopStart: 1, LoopEnd: len(bars)}
	for i, notes := range bars {
		d.Progression = append(d.Progression, model.DocBar{
			BarNum: i + 1,
			Chords: []model.DocChord{{MidiNotes: notes}},
		})
	}
	return d
}

func roundTrip(t *testing.T, d model.Document) []model.Observation {
	t.Helper()
	s, err := Render(d, 480, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	parsed, err := midi.ReadFrom(&buf)
	require.NoError(t, err)
	tpq, err := midi.TicksPerQuarter(parsed)
	require.NoError(t, err)
	assert.Equal(t, uint16(480), tpq)

	obs, err := bucket.Bucketize(midi.Events(parsed), bucket.TicksPerBar(tpq, 4, 0))
	require.NoError(t, err)
	return obs
}

func TestRenderRoundTrip(t *testing.T) {
	obs := roundTrip(t, doc([]int{60, 64, 67}, []int{57, 60, 64}, []int{65, 69, 72}, []int{67, 71, 74, 77}))
	p := progression.FromObservations(obs)

	var symbols []string
	for _, b := range p.Bars {
		symbols = append(symbols, b.Chords[0].Symbol())
	}
	assert.Equal(t, []string{"C", "Am", "F", "G7"}, symbols)
	assert.Equal(t, 4, p.LoopEnd)
}

func TestRenderRepeatedChordIsRestruck(t *testing.T) {
	obs := roundTrip(t, doc([]int{60, 64, 67}, []int{60, 64, 67}))
	require.Len(t, obs, 2)
	assert.Equal(t, []uint8{60, 64, 67}, obs[1].Notes)
}

func TestRenderSplitsSharedBar(t *testing.T) {
	d := model.Document{BPM: 120, Progression: []model.DocBar{{
		BarNum: 1,
		Chords: []model.DocChord{{MidiNotes: []int{60, 64, 67}}, {MidiNotes: []int{62, 65, 69}}},
	}}}
	obs := roundTrip(t, d)
	require.Len(t, obs, 1)
	assert.Equal(t, []uint8{60, 62, 64, 65, 67, 69}, obs[0].Notes)
}

func TestRenderKeepsGaps(t *testing.T) {
	d := model.Document{BPM: 120, Progression: []model.DocBar{
		{BarNum: 1, Chords: []model.DocChord{{MidiNotes: []int{60}}}},
		{BarNum: 3, Chords: []model.DocChord{{MidiNotes: []int{62}}}},
	}}
	obs := roundTrip(t, d)
	require.Len(t, obs, 2)
	assert.Equal(t, 3, obs[1].Bar)
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := Render(doc([]int{60, 200}), 480, 4)
	assert.Error(t, err)

	unordered := model.Document{Progression: []model.DocBar{
		{BarNum: 2, Chords: []model.DocChord{{MidiNotes: []int{60}}}},
		{BarNum: 1, Chords: []model.DocChord{{MidiNotes: []int{62}}}},
	}}
	_, err = Render(unordered, 480, 4)
	assert.ErrorIs(t, err, ErrUnordered)

	_, err = Render(doc([]int{60}), 0, 4)
	assert.ErrorIs(t, err, bucket.ErrInvalidBarSize)
}
