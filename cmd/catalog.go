package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the vocabulary catalog",
}

var errCatalogInvalid = errors.New("catalog has issues")

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check catalog files for malformed and misplaced entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, _ := cmd.Flags().GetBool("fix")
		ctx := cmd.Context()
		levels := cfg.LevelList()
		dir := catalog.NewDir(cfg.Catalog.Dir)
		out := cmd.OutOrStdout()

		if fix {
			moved, err := dir.Fix(ctx, levels)
			if err != nil {
				return err
			}
			logger.WithField("moved", moved).Info("relocated misplaced entries")
		}

		result, err := dir.Validate(ctx, levels)
		if err != nil {
			return err
		}
		for _, lvl := range levels {
			fmt.Fprintf(out, "%s: %d entries\n", catalog.FileName(lvl), result.Entries[lvl])
		}
		if result.OK() {
			fmt.Fprintln(out, "No issues found.")
			return nil
		}
		for _, issue := range result.Issues {
			fmt.Fprintln(out, issue)
		}
		if n := len(result.Misplaced()); n > 0 && !fix {
			fmt.Fprintf(out, "%d misplaced entries can be moved with --fix\n", n)
		}
		return fmt.Errorf("%w: %d found", errCatalogInvalid, len(result.Issues))
	},
}

func init() {
	catalogValidateCmd.Flags().Bool("fix", false, "Move misplaced entries to their level's file and re-number")
	catalogCmd.AddCommand(catalogValidateCmd)
}
