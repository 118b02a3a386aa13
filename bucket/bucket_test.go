package bucket

import (
	"testing"

	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func on(delta uint32, pitch uint8) model.TrackEvent {
	return model.TrackEvent{Delta: delta, Kind: model.Onset, Pitch: pitch, Velocity: 100}
}

func off(delta uint32, pitch uint8) model.TrackEvent {
	return model.TrackEvent{Delta: delta, Kind: model.Release, Pitch: pitch}
}

func onTrack(track int, evt model.TrackEvent) model.TrackEvent {
	evt.Track = track
	return evt
}

func TestTicksPerBar(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint32(1920), TicksPerBar(480, 0, 0))
	assert.Equal(uint32(1440), TicksPerBar(480, 3, 0))
	assert.Equal(uint32(1000), TicksPerBar(480, 4, 1000))
}

func TestBarAt(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1, BarAt(0, 1920))
	assert.Equal(1, BarAt(1919, 1920))
	assert.Equal(2, BarAt(1920, 1920))
	assert.Equal(3, BarAt(4000, 1920))
}

func TestScanTrackRetriggerWithoutRelease(t *testing.T) {
	events := []model.TrackEvent{on(0, 60), on(10, 60), on(10, 64)}
	buckets := ScanTrack(events, 1920)
	assert.Equal(t, Buckets{1: {60, 64}}, buckets)
}

func TestScanTrackHeldNoteIsNotNewOnsetInLaterBar(t *testing.T) {
	events := []model.TrackEvent{on(0, 60), on(1920, 60), on(0, 64)}
	assert.Equal(t, Buckets{1: {60}, 2: {64}}, ScanTrack(events, 1920))
}

func TestScanTrackReleaseThenRestrikeSameBar(t *testing.T) {
	events := []model.TrackEvent{on(0, 60), off(100, 60), on(100, 60)}
	assert.Equal(t, Buckets{1: {60}}, ScanTrack(events, 1920))
}

func TestScanTrackReleaseOfSilentPitchIsNoop(t *testing.T) {
	events := []model.TrackEvent{off(0, 61), on(0, 60), off(5, 62)}
	assert.Equal(t, Buckets{1: {60}}, ScanTrack(events, 1920))
}

func TestScanTrackKeepsFirstSeenOrder(t *testing.T) {
	events := []model.TrackEvent{on(0, 67), on(0, 60), on(0, 64)}
	assert.Equal(t, []uint8{67, 60, 64}, ScanTrack(events, 1920)[1])
}

func TestScanTrackBarsNonDecreasing(t *testing.T) {
	var events []model.TrackEvent
	for i := 0; i < 40; i++ {
		events = append(events, on(uint32(100+i*37), uint8(40+i)), off(1, uint8(40+i)))
	}

	var tick uint64
	last := 0
	for _, evt := range events {
		tick += uint64(evt.Delta)
		bar := BarAt(tick, 960)
		assert.GreaterOrEqual(t, bar, last)
		last = bar
	}
	assert.NotEmpty(t, ScanTrack(events, 960))
}

func TestBucketizeMergesTracks(t *testing.T) {
	events := []model.TrackEvent{
		onTrack(0, on(0, 64)),
		onTrack(0, on(1920, 65)),
		onTrack(1, on(0, 48)),
		onTrack(1, on(0, 64)),
		onTrack(1, on(1920, 53)),
	}
	obs, err := Bucketize(events, 1920)
	require.NoError(t, err)
	assert.Equal(t, []model.Observation{
		{Bar: 1, Notes: []uint8{48, 64}},
		{Bar: 2, Notes: []uint8{53, 65}},
	}, obs)
}

func TestBucketizeClockResetsPerTrack(t *testing.T) {
	events := []model.TrackEvent{
		onTrack(0, on(5000, 60)),
		onTrack(1, on(0, 72)),
	}
	obs, err := Bucketize(events, 1920)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, model.Observation{Bar: 1, Notes: []uint8{72}}, obs[0])
	assert.Equal(t, model.Observation{Bar: 3, Notes: []uint8{60}}, obs[1])
}

func TestBucketizeActiveSetIsPerTrack(t *testing.T) {
	// track 1 strikes a pitch that track 0 is still holding
	events := []model.TrackEvent{
		onTrack(0, on(0, 60)),
		onTrack(1, on(1920, 60)),
	}
	obs, err := Bucketize(events, 1920)
	require.NoError(t, err)
	assert.Equal(t, []model.Observation{
		{Bar: 1, Notes: []uint8{60}},
		{Bar: 2, Notes: []uint8{60}},
	}, obs)
}

func TestBucketizeSkipsEmptyBars(t *testing.T) {
	events := []model.TrackEvent{on(0, 60), off(100, 60), on(1920*3, 62)}
	obs, err := Bucketize(events, 1920)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, 1, obs[0].Bar)
	assert.Equal(t, 4, obs[1].Bar)
}

func TestBucketizeNoOnsets(t *testing.T) {
	obs, err := Bucketize([]model.TrackEvent{off(0, 60)}, 1920)
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestBucketizeRejectsZeroBar(t *testing.T) {
	_, err := Bucketize(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidBarSize)
}

func TestSplitTracks(t *testing.T) {
	events := []model.TrackEvent{onTrack(2, on(0, 1)), onTrack(0, on(0, 2)), onTrack(2, on(0, 3))}
	tracks := SplitTracks(events)
	require.Len(t, tracks, 2)
	assert.Equal(t, uint8(2), tracks[0][0].Pitch)
	assert.Equal(t, []uint8{1, 3}, []uint8{tracks[1][0].Pitch, tracks[1][1].Pitch})
}
