package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/vocab"
)

var starCmd = &cobra.Command{
	Use:   "star <word#meaning>",
	Short: "Pin an item for gentler, more frequent review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := vocab.ParseItemKey(args[0])
		if err != nil {
			return err
		}
		off, _ := cmd.Flags().GetBool("off")

		d, err := openDeps(cmd.Context())
		if err != nil {
			return err
		}
		defer d.Close()

		status, err := d.service.SetStarred(cmd.Context(), key, !off)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), status)
	},
}

func init() {
	starCmd.Flags().Bool("off", false, "Unpin the item instead")
}
