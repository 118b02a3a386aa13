package constants

import "os"

// FormatVersion is written into every progression document.
const FormatVersion = "3.0"

// DefaultBPM is not derived from the source; tempo extraction is not done.
const DefaultBPM = 120

// BarsPerBeat multiplies ticks per quarter note to get ticks per bar when
// no explicit bar size is configured.
const BarsPerBeat = 4

const PreviewBars = 8

const DefaultOutputFile = "combined_progression.json"

func GetOutputPath() string {
	path := os.Getenv("OUTPUT_PATH")
	if path != "" {
		return path
	}
	return DefaultOutputFile
}

func GetConfigPath() string {
	return os.Getenv("CHORDEX_CONFIG")
}
