package model

type Bar struct {
	Num    int
	Chords []ChordSymbol
}

type Progression struct {
	Version   string
	BPM       int
	LoopStart int
	LoopEnd   int
	Bars      []Bar
}

// Document is the serialized form of a Progression.
type Document struct {
	Version     string   `json:"version"`
	Progression []DocBar `json:"progression"`
	BPM         int      `json:"bpm"`
	LoopStart   int      `json:"loopStart"`
	LoopEnd     int      `json:"loopEnd"`
}

type DocBar struct {
	BarNum int        `json:"barNum"`
	Chords []DocChord `json:"chords"`
}

type DocChord struct {
	Symbol    string   `json:"symbol"`
	Root      string   `json:"root"`
	Quality   string   `json:"quality"`
	MidiNotes []int    `json:"midiNotes"`
	NoteNames []string `json:"noteNames"`
}
