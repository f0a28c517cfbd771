package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show progress reports",
}

var reportTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Summarize today's practice",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd.Context())
		if err != nil {
			return err
		}
		defer d.Close()

		sum, err := d.service.TodaySummary(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return printJSON(out, sum)
		}

		fmt.Fprintf(out, "%s: %d items practiced\n", sum.Date, sum.PracticedToday)
		for _, lvl := range cfg.LevelList() {
			fmt.Fprintf(out, "%-4s correct %d  wrong %d  article %d  learned %d\n", lvl,
				sum.Accuracy.Correct[lvl],
				sum.Accuracy.Wrong[lvl],
				sum.Accuracy.ArticleWrong[lvl],
				sum.Learned[lvl],
			)
		}

		names := make([]string, 0, len(sum.Categories))
		for name := range sum.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := sum.Categories[name]
			fmt.Fprintf(out, "%-12s right %d  wrong %d", name, c.Right, c.Wrong)
			if c.ArticleWrong > 0 {
				fmt.Fprintf(out, "  article %d", c.ArticleWrong)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	reportTodayCmd.Flags().Bool("json", false, "Print JSON instead of text")
	reportCmd.AddCommand(reportTodayCmd)
}
