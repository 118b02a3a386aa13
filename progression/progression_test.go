package progression

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jsphweid/chordex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barNums(p *model.Progression) []int {
	var res []int
	for _, b := range p.Bars {
		res = append(res, b.Num)
	}
	return res
}

func TestFromObservationsKeepsBarNumbers(t *testing.T) {
	p := FromObservations([]model.Observation{
		{Bar: 1, Notes: []uint8{60, 64, 67}},
		{Bar: 3, Notes: []uint8{57, 60, 64}},
	})

	assert := assert.New(t)
	assert.Equal([]int{1, 3}, barNums(p))
	assert.Equal("C", p.Bars[0].Chords[0].Symbol())
	assert.Equal("Am", p.Bars[1].Chords[0].Symbol())
	assert.Equal(1, p.LoopStart)
	assert.Equal(2, p.LoopEnd)
	assert.Equal(120, p.BPM)
	assert.Equal("3.0", p.Version)
}

func TestMergeRenumbers(t *testing.T) {
	a := FromObservations([]model.Observation{
		{Bar: 1, Notes: []uint8{60, 64, 67}},
		{Bar: 3, Notes: []uint8{65, 69, 72}},
	})
	b := FromObservations([]model.Observation{
		{Bar: 1, Notes: []uint8{67, 71, 74}},
		{Bar: 2, Notes: []uint8{60, 64, 67, 70}},
	})

	merged := Merge(a, b)
	assert := assert.New(t)
	assert.Equal([]int{1, 2, 3, 4}, barNums(merged))
	assert.Equal(4, merged.LoopEnd)

	var symbols []string
	for _, bar := range merged.Bars {
		symbols = append(symbols, bar.Chords[0].Symbol())
	}
	assert.Equal([]string{"C", "F", "G", "C7"}, symbols)

	// inputs are untouched
	assert.Equal([]int{1, 3}, barNums(a))
}

func TestMergeNothing(t *testing.T) {
	merged := Merge()
	assert.Empty(t, merged.Bars)
	assert.Equal(t, 0, merged.LoopEnd)

	doc := ToDocument(Merge(nil))
	assert.NotNil(t, doc.Progression)
}

func TestDocumentFields(t *testing.T) {
	p := Merge(FromObservations([]model.Observation{{Bar: 2, Notes: []uint8{62, 65, 69, 72}}}))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	assert := assert.New(t)
	assert.Equal("3.0", raw["version"])
	assert.Equal(float64(120), raw["bpm"])
	assert.Equal(float64(1), raw["loopStart"])
	assert.Equal(float64(1), raw["loopEnd"])

	bars := raw["progression"].([]any)
	require.Len(t, bars, 1)
	bar := bars[0].(map[string]any)
	assert.Equal(float64(1), bar["barNum"])
	c := bar["chords"].([]any)[0].(map[string]any)
	assert.Equal("Dm7", c["symbol"])
	assert.Equal("D", c["root"])
	assert.Equal("m7", c["quality"])
	assert.Equal([]any{float64(62), float64(65), float64(69), float64(72)}, c["midiNotes"])
	assert.Equal([]any{"D4", "F4", "A4", "C5"}, c["noteNames"])
}

func TestQualityIsNotStrippedFromSymbol(t *testing.T) {
	// C# root with a suffix that contains "C" would break substring removal
	p := FromObservations([]model.Observation{{Bar: 1, Notes: []uint8{61, 64, 68}}})
	doc := ToDocument(p)
	c := doc.Progression[0].Chords[0]
	assert.Equal(t, "C#m", c.Symbol)
	assert.Equal(t, "C#", c.Root)
	assert.Equal(t, "m", c.Quality)
}

func TestUnmatchedChordDocument(t *testing.T) {
	doc := ToDocument(FromObservations([]model.Observation{{Bar: 1, Notes: []uint8{60, 61}}}))
	c := doc.Progression[0].Chords[0]
	assert.Equal(t, "C", c.Symbol)
	assert.Equal(t, "", c.Quality)
}

func TestWriteAndReadFile(t *testing.T) {
	p := FromObservations([]model.Observation{{Bar: 1, Notes: []uint8{60, 64, 67}}})
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteFile(path, p))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ToDocument(p), doc)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("{nope")))
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	var obs []model.Observation
	for i := 1; i <= 10; i++ {
		obs = append(obs, model.Observation{Bar: i, Notes: []uint8{60, 64, 67}})
	}
	p := FromObservations(obs)

	lines := Preview(p, 8)
	require.Len(t, lines, 8)
	assert.Equal(t, "Bar 1: C - [C4 E4 G4]", lines[0])
	assert.Len(t, Preview(p, 20), 10)
	assert.Empty(t, Preview(p, -1))
}
