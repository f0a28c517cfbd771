package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/session"
)

var answerCmd = &cobra.Command{
	Use:   "answer [file]",
	Short: "Record a batch of quiz results read from a file or stdin",
	Long: `Record quiz results. Input is a JSON array of results, or an object
with a "results" array. Each result carries item_key ("word#meaning"),
result_type, direction and user_answer. Use "-" or no argument for stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open results: %w", err)
			}
			defer f.Close()
			in = f
		}

		results, err := session.DecodeResults(in)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd.Context())
		if err != nil {
			return err
		}
		defer d.Close()

		summary, err := d.service.RecordResults(cmd.Context(), results)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), summary)
	},
}
