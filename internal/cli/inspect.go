package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"carprice/internal/artifact"
	"carprice/internal/predictor"
)

func newInspectCmd(cfg *Config) *cobra.Command {
	var modelPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a summary of a trained artifact as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := predictor.Open(modelPath, &cfg.log)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cfg.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(p.Status())
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", artifact.DefaultPath, "Artifact path")
	return cmd
}
