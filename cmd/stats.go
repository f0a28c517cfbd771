package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/session"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats <scope> <word#meaning>...",
	Short: "Show stored learning state for items",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		explain, _ := cmd.Flags().GetBool("explain")
		history, _ := cmd.Flags().GetInt("history")
		asJSON, _ := cmd.Flags().GetBool("json")

		keys := make([]vocab.ItemKey, 0, len(args)-1)
		for _, a := range args[1:] {
			k, err := vocab.ParseItemKey(a)
			if err != nil {
				return err
			}
			keys = append(keys, k)
		}

		d, err := openDeps(cmd.Context())
		if err != nil {
			return err
		}
		defer d.Close()

		found, err := d.service.LookupStats(cmd.Context(), args[0], keys)
		if err != nil {
			return err
		}

		transitions := make(map[vocab.ItemKey][]store.TransitionEvent)
		if history > 0 {
			for _, s := range found {
				events, err := d.store.TransitionRepo().Recent(cmd.Context(), s.Key, history)
				if err != nil {
					return fmt.Errorf("query transitions: %w", err)
				}
				transitions[s.Key] = events
			}
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return printJSON(out, found)
		}
		if len(found) == 0 {
			fmt.Fprintln(out, "No stored state for these items.")
			return nil
		}
		for _, s := range found {
			printItemStats(out, s, explain)
			printTransitions(out, transitions[s.Key])
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("explain", false, "Break the priority score down by factor")
	statsCmd.Flags().Int("history", 0, "Show the N most recent state transitions")
	statsCmd.Flags().Bool("json", false, "Print JSON instead of text")
}

func printItemStats(w io.Writer, s session.ItemStats, explain bool) {
	st := s.State
	fmt.Fprintf(w, "%s  [%s, %s]\n", s.Key, s.Level, s.Phase)
	fmt.Fprintf(w, "  right %d  wrong %d  article %d  seen %d  streak %d  delay %dd\n",
		st.Right, st.Wrong, st.ArticleWrong, st.TotalEncountered, st.StreakLevel, st.CurrentDelayDays)
	if st.NextShowDate != nil {
		fmt.Fprintf(w, "  next show %s\n", st.NextShowDate.Format("2006-01-02"))
	}
	if st.IsStarred {
		fmt.Fprintln(w, "  starred")
	}
	fmt.Fprintf(w, "  priority %.1f\n", s.Priority.Total)
	if !explain || s.Priority.New {
		return
	}
	p := s.Priority
	fmt.Fprintf(w, "    %-16s %5.1f\n", "accuracy", p.Accuracy)
	fmt.Fprintf(w, "    %-16s %5.1f\n", "recency", p.Recency)
	fmt.Fprintf(w, "    %-16s %5.1f\n", "volatility", p.Volatility)
	fmt.Fprintf(w, "    %-16s %5.1f\n", "article", p.ArticleWeakness)
	fmt.Fprintf(w, "    %-16s %5.1f\n", "confusion", p.Confusion)
	fmt.Fprintf(w, "    %-16s %5.1f\n", "stickiness", p.Stickiness)
	fmt.Fprintf(w, "    %-16s %5.1f\n", "first encounter", p.FirstEncounter)
}

func printTransitions(w io.Writer, events []store.TransitionEvent) {
	if len(events) == 0 {
		return
	}
	fmt.Fprintf(w, "  %-19s  %-14s  %-16s  %s\n", "Timestamp", "Outcome", "Trigger", "Phase")
	fmt.Fprintln(w, "  "+strings.Repeat("─", 70))
	for _, e := range events {
		fmt.Fprintf(w, "  %-19s  %-14s  %-16s  %s -> %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Outcome,
			e.Trigger,
			e.From,
			e.To,
		)
	}
}
