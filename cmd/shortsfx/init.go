package main

import (
	"github.com/spf13/cobra"

	"github.com/danceshorts/shortsfx/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Create sample project configuration files",
	Long: `Init writes sample versions of the three project files into the given
directory (default: current directory) so a fresh project is runnable
immediately. Files that already exist are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return config.WriteSamples(logger, dir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
