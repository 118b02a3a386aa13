package analyze

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jsphweid/chordex/bucket"
	"github.com/jsphweid/chordex/midi"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/note"
	"github.com/jsphweid/chordex/util"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
)

type OnsetGroup struct {
	Tick  uint64
	Notes []uint8
}

type TrackReport struct {
	Index       int
	Name        string
	Groups      []OnsetGroup
	// TotalGroups counts every onset time, including ones past the limit.
	TotalGroups int
}

type Report struct {
	TicksPerQuarter uint16
	Length          time.Duration
	Tracks          []TrackReport
}

// Analyze groups the onsets of each track by absolute tick. Only the first
// limit groups per track are kept; limit <= 0 keeps all of them.
func Analyze(s *smf.SMF, limit int) Report {
	tpq, _ := midi.TicksPerQuarter(s)
	report := Report{TicksPerQuarter: tpq}

	byTrack := make(map[int][]model.TrackEvent)
	for _, evt := range midi.Events(s) {
		byTrack[evt.Track] = append(byTrack[evt.Track], evt)
	}

	var longest uint64
	for i, track := range s.Tracks {
		var end uint64
		for _, evt := range track {
			end += uint64(evt.Delta)
		}
		if end > longest {
			longest = end
		}

		groups := onsetGroups(byTrack[i])
		tr := TrackReport{Index: i, Name: midi.TrackName(track), TotalGroups: len(groups)}
		if limit > 0 {
			groups = groups[:util.Min(limit, len(groups))]
		}
		tr.Groups = groups
		report.Tracks = append(report.Tracks, tr)
	}

	if tpq > 0 {
		report.Length = time.Duration(s.TimeAt(int64(longest))) * time.Microsecond
	}
	return report
}

func onsetGroups(events []model.TrackEvent) []OnsetGroup {
	var tick uint64
	byTick := make(map[uint64][]uint8)
	for _, evt := range events {
		tick += uint64(evt.Delta)
		if evt.Kind == model.Onset {
			byTick[tick] = append(byTick[tick], evt.Pitch)
		}
	}

	var res []OnsetGroup
	for _, t := range util.SortedKeys(byTick) {
		notes := byTick[t]
		slices.Sort(notes)
		res = append(res, OnsetGroup{Tick: t, Notes: notes})
	}
	return res
}

// BarSummary lists the bucketed chords for a quick look at what convert
// would see, using the same bar size.
func BarSummary(s *smf.SMF, ticksPerBar uint32) ([]model.Observation, error) {
	return bucket.Bucketize(midi.Events(s), ticksPerBar)
}

func (r Report) Write(w io.Writer) {
	fmt.Fprintf(w, "Ticks per beat: %d\n", r.TicksPerQuarter)
	fmt.Fprintf(w, "Number of tracks: %d\n", len(r.Tracks))
	fmt.Fprintf(w, "Length: %.2f seconds\n", r.Length.Seconds())

	for _, tr := range r.Tracks {
		fmt.Fprintf(w, "\n--- Track %d: %s ---\n", tr.Index, tr.Name)
		if tr.TotalGroups == 0 {
			fmt.Fprintln(w, "  No note events found")
			continue
		}
		fmt.Fprintln(w, "Chords found (time: notes):")
		for _, g := range tr.Groups {
			fmt.Fprintf(w, "  Time %6d: %s (MIDI: %v)\n", g.Tick, strings.Join(note.NoteNames(g.Notes), ", "), g.Notes)
		}
		if tr.TotalGroups > len(tr.Groups) {
			fmt.Fprintf(w, "  ... %d more\n", tr.TotalGroups-len(tr.Groups))
		}
	}
}
