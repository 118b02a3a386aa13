package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordex/analyze"
	"github.com/jsphweid/chordex/midi"
)

var analyzeLimit int

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeLimit, "limit", "n", 20, "Onset groups to list per track (0 for all)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <midi_file1> [midi_file2] ...",
	Short: "Lists the onsets of every track",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, path := range args {
			runAnalyze(cmd.OutOrStdout(), path)
		}
	},
}

func runAnalyze(w io.Writer, path string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\nAnalyzing: %s\n%s\n\n", rule, path, rule)

	s, err := midi.ReadMidiFile(path)
	if err != nil {
		slog.Error("could not analyze", "source", path, "err", err)
		fmt.Fprintf(w, "Error analyzing %s: %v\n", path, err)
		return
	}
	analyze.Analyze(s, analyzeLimit).Write(w)
	fmt.Fprintf(w, "\n%s\n", rule)
}
