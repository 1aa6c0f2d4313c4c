package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"carprice/internal/artifact"
	"carprice/internal/predictor"
)

func newPredictCmd(cfg *Config) *cobra.Command {
	var (
		modelPath     string
		marca, modelo string
		ano, km       int
	)
	cmd := &cobra.Command{
		Use:     "predict",
		Short:   "Estimate the price of one car using a trained artifact",
		Example: "  carprice predict --marca Ford --modelo Ka --ano 2018 --km 50000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing artifact surfaces as ModelUnavailable, same as the HTTP service.
			p, err := predictor.Open(modelPath, &cfg.log)
			if err != nil {
				cfg.log.Debug().Err(err).Msg("artifact load failed")
			}
			price, err := p.Predict(marca, modelo, ano, km)
			if err != nil {
				return err
			}
			fmt.Fprintf(cfg.Out, "%.2f\n", price)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", artifact.DefaultPath, "Artifact path")
	cmd.Flags().StringVar(&marca, "marca", "", "Car brand")
	cmd.Flags().StringVar(&modelo, "modelo", "", "Car model")
	cmd.Flags().IntVar(&ano, "ano", 0, "Manufacturing year")
	cmd.Flags().IntVar(&km, "km", 0, "Mileage in kilometres")
	for _, f := range []string{"marca", "modelo", "ano", "km"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
