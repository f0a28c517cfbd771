package cmd

import (
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz [scope]",
	Short: "Select the next quiz batch for a level or \"mix\"",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := "mix"
		if len(args) == 1 {
			scope = args[0]
		}
		size, _ := cmd.Flags().GetInt("size")

		d, err := openDeps(cmd.Context())
		if err != nil {
			return err
		}
		defer d.Close()

		quiz, err := d.service.SelectQuiz(cmd.Context(), scope, size)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), quiz)
	},
}

func init() {
	quizCmd.Flags().Int("size", 0, "Batch size (0 uses the configured default)")
}
