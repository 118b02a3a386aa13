package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/note"
	"github.com/jsphweid/chordex/util"
)

var classifyBass int

func init() {
	classifyCmd.Flags().IntVar(&classifyBass, "bass", -1, "Bass note, marks the chord as an inversion when it differs from the root")
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:     "classify <notes>",
	Short:   "Names the chord formed by MIDI notes, e.g. 60,64,67",
	Args:    cobra.MinimumNArgs(1),
	Example: "chordex classify 60 64 67 --bass 52",
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := util.ParseNotes(strings.Join(args, " "))
		if err != nil {
			return err
		}

		var sym model.ChordSymbol
		if classifyBass >= 0 {
			if classifyBass > 127 {
				return fmt.Errorf("bass %d out of range 0-127", classifyBass)
			}
			sym, err = chord.ClassifyWithBass(notes, uint8(classifyBass))
		} else {
			sym, err = chord.Classify(notes)
		}
		if err != nil {
			return err
		}

		quality := sym.Quality.Name
		if quality == "" {
			quality = "unclassified"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) %v\n", sym.Symbol(), quality, note.NoteNames(sym.Notes))
		return nil
	},
}
