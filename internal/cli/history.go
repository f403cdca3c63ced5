package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dewi-tim/mpvtui/internal/history"
	"github.com/dewi-tim/mpvtui/internal/ui/components"
)

func (a *app) historyCmd() *cobra.Command {
	var limit int
	var forget string
	c := &cobra.Command{
		Use:   "history",
		Short: "List saved playback positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.cfg.HistoryPath()
			if err != nil {
				return err
			}
			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			defer store.Close()

			if forget != "" {
				if abs, err := filepath.Abs(forget); err == nil {
					forget = abs
				}
				return store.Forget(cmd.Context(), forget)
			}

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history entries found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s / %s\t%s\t%s\n",
					e.Title,
					components.FormatDuration(seconds(e.Position)),
					components.FormatDuration(seconds(e.Duration)),
					e.UpdatedAt.Format(time.DateTime),
					e.Path)
			}
			return w.Flush()
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	c.Flags().StringVar(&forget, "forget", "", "Remove the saved position of a file")
	return c
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
