package progression

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/note"
	"github.com/jsphweid/chordex/util"
)

func newProgression(bars []model.Bar) *model.Progression {
	return &model.Progression{
		Version:   constants.FormatVersion,
		BPM:       constants.DefaultBPM,
		LoopStart: 1,
		LoopEnd:   len(bars),
		Bars:      bars,
	}
}

// FromObservations classifies each observed bar. Bar numbers are kept as
// they came from the tick positions, so a single source may have gaps.
func FromObservations(observations []model.Observation) *model.Progression {
	bars := make([]model.Bar, 0, len(observations))
	for _, obs := range observations {
		sym, err := chord.Classify(obs.Notes)
		if err != nil {
			continue
		}
		bars = append(bars, model.Bar{Num: obs.Bar, Chords: []model.ChordSymbol{sym}})
	}
	return newProgression(bars)
}

// Merge concatenates progressions in argument order and renumbers the bars
// from 1. Original bar numbers, and the gaps between them, are dropped.
func Merge(progressions ...*model.Progression) *model.Progression {
	var bars []model.Bar
	for _, p := range progressions {
		if p == nil {
			continue
		}
		for _, b := range p.Bars {
			chords := make([]model.ChordSymbol, len(b.Chords))
			copy(chords, b.Chords)
			bars = append(bars, model.Bar{Num: len(bars) + 1, Chords: chords})
		}
	}
	if bars == nil {
		bars = []model.Bar{}
	}
	return newProgression(bars)
}

func ToDocChord(c model.ChordSymbol) model.DocChord {
	return model.DocChord{
		Symbol:    c.Symbol(),
		Root:      c.RootName(),
		Quality:   c.Quality.Suffix,
		MidiNotes: util.ToInts(c.Notes),
		NoteNames: note.NoteNames(c.Notes),
	}
}

func ToDocument(p *model.Progression) model.Document {
	doc := model.Document{
		Version:     p.Version,
		Progression: make([]model.DocBar, 0, len(p.Bars)),
		BPM:         p.BPM,
		LoopStart:   p.LoopStart,
		LoopEnd:     p.LoopEnd,
	}
	for _, b := range p.Bars {
		db := model.DocBar{BarNum: b.Num, Chords: make([]model.DocChord, 0, len(b.Chords))}
		for _, c := range b.Chords {
			db.Chords = append(db.Chords, ToDocChord(c))
		}
		doc.Progression = append(doc.Progression, db)
	}
	return doc
}

func Encode(w io.Writer, p *model.Progression) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToDocument(p))
}

func Decode(r io.Reader) (model.Document, error) {
	var doc model.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return doc, fmt.Errorf("could not decode progression: %w", err)
	}
	return doc, nil
}

func WriteFile(path string, p *model.Progression) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	if err := Encode(f, p); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return f.Close()
}

func ReadFile(path string) (model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Document{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Preview lists up to max bars as "Bar 1: C - [C4 E4 G4]".
func Preview(p *model.Progression, max int) []string {
	if max < 0 {
		max = 0
	}
	var lines []string
	for _, b := range p.Bars[:util.Min(max, len(p.Bars))] {
		if len(b.Chords) == 0 {
			continue
		}
		c := b.Chords[0]
		lines = append(lines, fmt.Sprintf("Bar %d: %s - %v", b.Num, c.Symbol(), note.NoteNames(c.Notes)))
	}
	return lines
}
