package bucket

import (
	"errors"

	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/util"
	"golang.org/x/exp/slices"
)

var ErrInvalidBarSize = errors.New("ticks per bar must be positive")

// Buckets maps a bar number to the pitches first struck in it, in the
// order they were struck.
type Buckets = map[int][]uint8

// TicksPerBar picks the bar size: override when set, otherwise ticks per
// quarter note times the bars-per-beat factor.
func TicksPerBar(ticksPerQuarter uint16, barsPerBeat int, override uint32) uint32 {
	if override > 0 {
		return override
	}
	if barsPerBeat <= 0 {
		barsPerBeat = constants.BarsPerBeat
	}
	return uint32(ticksPerQuarter) * uint32(barsPerBeat)
}

// BarAt is 1-based.
func BarAt(tick uint64, ticksPerBar uint32) int {
	return int(tick/uint64(ticksPerBar)) + 1
}

// ScanTrack buckets the onsets of a single track. A pitch that is struck
// again before being released is not a new onset. Releases of pitches that
// are not sounding are ignored, and notes still held at the end are dropped.
func ScanTrack(events []model.TrackEvent, ticksPerBar uint32) Buckets {
	var currentTick uint64
	active := make(map[uint8]uint64)
	buckets := make(Buckets)

	for _, evt := range events {
		currentTick += uint64(evt.Delta)
		switch evt.Kind {
		case model.Onset:
			if _, ok := active[evt.Pitch]; ok {
				continue
			}
			active[evt.Pitch] = currentTick
			bar := BarAt(currentTick, ticksPerBar)
			if !slices.Contains(buckets[bar], evt.Pitch) {
				buckets[bar] = append(buckets[bar], evt.Pitch)
			}
		case model.Release:
			delete(active, evt.Pitch)
		}
	}
	return buckets
}

// SplitTracks groups events by track, keeping stream order inside each
// track. Tracks come back in ascending index order.
func SplitTracks(events []model.TrackEvent) [][]model.TrackEvent {
	byTrack := make(map[int][]model.TrackEvent)
	for _, evt := range events {
		byTrack[evt.Track] = append(byTrack[evt.Track], evt)
	}
	var res [][]model.TrackEvent
	for _, track := range util.SortedKeys(byTrack) {
		res = append(res, byTrack[track])
	}
	return res
}

// Bucketize scans every track on its own clock and unions the results per
// bar number. Observations are ascending by bar with ascending unique notes.
func Bucketize(events []model.TrackEvent, ticksPerBar uint32) ([]model.Observation, error) {
	if ticksPerBar == 0 {
		return nil, ErrInvalidBarSize
	}

	merged := make(map[int]map[uint8]bool)
	for _, track := range SplitTracks(events) {
		for bar, notes := range ScanTrack(track, ticksPerBar) {
			set, ok := merged[bar]
			if !ok {
				set = make(map[uint8]bool)
				merged[bar] = set
			}
			for _, n := range notes {
				set[n] = true
			}
		}
	}

	res := make([]model.Observation, 0, len(merged))
	for _, bar := range util.SortedKeys(merged) {
		res = append(res, model.Observation{Bar: bar, Notes: util.SortedKeys(merged[bar])})
	}
	return res, nil
}
