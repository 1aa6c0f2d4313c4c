package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"carprice/internal/history"
)

func newHistoryCmd(cfg *Config) *cobra.Command {
	var (
		dbPath string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded training runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := history.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			runs, err := st.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cfg.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMODEL\tROWS\tR2\tRMSE\tTRAINED AT\tARTIFACT")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\t%.2f\t%s\t%s\n",
					r.ID, r.ModelID, r.Rows, r.R2, r.RMSE,
					time.Unix(r.TrainedAt, 0).UTC().Format(time.RFC3339), r.ArtifactPath)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "carprice_history.db", "SQLite history database")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
