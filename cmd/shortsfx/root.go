package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danceshorts/shortsfx/pkg/config"
)

var (
	cfgFile string
	verbose bool
	quiet   bool

	settings config.Settings
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shortsfx",
	Short: "Automated post-production for vertical dance shorts",
	Long: `shortsfx stitches configured dance clips into a 9:16 vertical short:
scenes are trimmed and normalized, joined with cross-dissolves, overlaid
with beat-timed text, and encoded to H.264 MP4.

A project directory carries three JSON files: veo_instructions.json
(scenes), metadata_options.json (titles and overlay text) and
style_options.json (overlay styling).`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; environment wins over it either way.
		_ = godotenv.Load()

		var err error
		settings, err = config.LoadSettings(cfgFile)
		if err != nil {
			return err
		}

		logger = setupLogging(settings.LogLevel)
		return nil
	},
}

func setupLogging(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	if verbose {
		parsed = zerolog.DebugLevel
	}
	if quiet {
		parsed = zerolog.ErrorLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}).Level(parsed).With().Timestamp().Logger()
}

// Execute runs the CLI, logging the failure before returning it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a shortsfx.yaml settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}
