package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordex/watch"
)

func init() {
	watchCmd.Flags().StringVarP(&convertOpts.out, "out", "o", "", "Output file (default from config, then OUTPUT_PATH)")
	watchCmd.Flags().Uint32Var(&convertOpts.ticksPerBar, "ticks-per-bar", 0, "Bar size in ticks")
	watchCmd.Flags().IntVar(&convertOpts.barsPerBeat, "bars-per-beat", 0, "Quarter notes per bar")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <midi_file1> [midi_file2] ...",
	Short: "Converts once, then again every time a source changes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		reconvert := func() {
			if err := runConvert(w, args, nil); err != nil {
				slog.Error("conversion failed", "err", err)
			}
		}
		reconvert()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(w, "\nWatching %d files...\n", len(args))
		err := watch.New(args, cfg.Watch.Interval, cfg.Watch.Debounce, reconvert).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
