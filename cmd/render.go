package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordex/progression"
	"github.com/jsphweid/chordex/sample"
)

var renderTicksPerQuarter uint16

func init() {
	renderCmd.Flags().Uint16Var(&renderTicksPerQuarter, "tpq", 480, "Ticks per quarter note of the written file")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <progression.json> <out.mid>",
	Short: "Writes a progression document back out as block chords",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := progression.ReadFile(args[0])
		if err != nil {
			return err
		}
		s, err := sample.Render(doc, renderTicksPerQuarter, cfg.BarsPerBeat)
		if err != nil {
			return err
		}
		if err := sample.WriteFile(args[1], s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Rendered %d bars to %s\n", len(doc.Progression), args[1])
		return nil
	},
}
