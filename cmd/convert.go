package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/go-ansi"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chordex/convert"
	"github.com/jsphweid/chordex/db"
	"github.com/jsphweid/chordex/progression"
)

type convertFlags struct {
	out         string
	ticksPerBar uint32
	barsPerBeat int
	publish     string
	progress    bool
}

var convertOpts convertFlags

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertOpts.out, "out", "o", "", "Output file (default from config, then OUTPUT_PATH)")
	f.Uint32Var(&convertOpts.ticksPerBar, "ticks-per-bar", 0, "Bar size in ticks (default ticks per quarter times bars-per-beat)")
	f.IntVar(&convertOpts.barsPerBeat, "bars-per-beat", 0, "Quarter notes per bar")
	f.StringVar(&convertOpts.publish, "publish", "", "Also store the progression in DynamoDB under this key")
	f.BoolVar(&convertOpts.progress, "progress", true, "Show a progress bar")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <midi_file1> [midi_file2] ...",
	Short: "Converts MIDI files into one progression document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var progress io.Writer
		if convertOpts.progress {
			progress = ansi.NewAnsiStderr()
		}
		return runConvert(cmd.OutOrStdout(), args, progress)
	},
}

func convertOptions(progress io.Writer) convert.Options {
	opts := convert.Options{
		BarsPerBeat: cfg.BarsPerBeat,
		TicksPerBar: cfg.TicksPerBar,
		Progress:    progress,
	}
	if convertOpts.barsPerBeat > 0 {
		opts.BarsPerBeat = convertOpts.barsPerBeat
	}
	if convertOpts.ticksPerBar > 0 {
		opts.TicksPerBar = convertOpts.ticksPerBar
	}
	return opts
}

func outputPath() string {
	if convertOpts.out != "" {
		return convertOpts.out
	}
	return cfg.Output
}

func runConvert(w io.Writer, paths []string, progress io.Writer) error {
	res, err := convert.ConvertAll(convert.FileSources(paths), convertOptions(progress))

	for _, s := range res.Sources {
		if s.OK() {
			fmt.Fprintf(w, "✓ Converted %d bars from %s\n", len(s.Progression.Bars), s.Source)
		} else {
			fmt.Fprintf(w, "✗ Error converting %s: %v\n", s.Source, s.Err)
		}
	}

	if errors.Is(err, convert.ErrNoResults) {
		fmt.Fprintln(w, "No bars converted!")
		return nil
	}
	if err != nil {
		return err
	}

	out := outputPath()
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	if err := progression.WriteFile(out, res.Progression); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n✓ Saved %d bars to %s\n", len(res.Progression.Bars), out)

	if convertOpts.publish != "" {
		store, err := db.NewFromConfig(cfg.DynamoDB)
		if err != nil {
			return err
		}
		var names []string
		for _, s := range res.Converted() {
			names = append(names, filepath.Base(s.Source))
		}
		if err := store.Save(convertOpts.publish, names, res.Progression); err != nil {
			return err
		}
		fmt.Fprintf(w, "✓ Published as %s\n", convertOpts.publish)
	}

	fmt.Fprintf(w, "\nPreview:\n")
	fmt.Fprintln(w, "  "+strings.Join(progression.Preview(res.Progression, cfg.PreviewBars), "\n  "))
	return nil
}
