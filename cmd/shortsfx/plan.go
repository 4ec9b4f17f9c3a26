package main

import (
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [project-dir]",
	Short: "Print the render plan for a project without rendering",
	Long: `Plan performs every stage of a render except the encode: clips are
probed, scenes validated, the timeline composed and overlays scheduled.
The resulting plan is printed as JSON and no file is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		result, err := runProject(cmd.Context(), dir, "", true)
		if err != nil {
			return err
		}
		return printPlan(result.Plan)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
