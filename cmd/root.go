package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsphweid/chordex/config"
)

var (
	configPath string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "chordex",
	Short: "Extracts chord progressions from MIDI files",
	Long: `chordex buckets the note onsets of MIDI files into bars, names the chord
each bar forms, and writes the result as a progression document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
