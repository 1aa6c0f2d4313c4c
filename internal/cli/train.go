package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"carprice/internal/artifact"
	"carprice/internal/history"
	"carprice/internal/predictor"
	"carprice/internal/trainer"
)

// Sample car evaluated after training as a smoke check.
var sampleCar = struct {
	Marca, Modelo      string
	Ano, Quilometragem int
}{"Chevrolet", "Onix", 2020, 30000}

func newTrainCmd(cfg *Config) *cobra.Command {
	var dataPath, outPath, historyDB string
	cmd := &cobra.Command{
		Use:     "train",
		Short:   "Fit the price model from a CSV and write the artifact",
		Example: "  carprice train --data data/carros.csv --out modelo_carro.json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := trainer.Run(dataPath, outPath, cfg.log)
			if err != nil {
				return fmt.Errorf("training failed: %w", err)
			}
			cfg.log.Info().Strs("columns", a.Columns()).Msg("expected columns")

			// Score the sample through the serving path, not the design matrix.
			p := predictor.New(a)
			price, err := p.Predict(sampleCar.Marca, sampleCar.Modelo, sampleCar.Ano, sampleCar.Quilometragem)
			if err != nil {
				return fmt.Errorf("sample prediction: %w", err)
			}
			fmt.Fprintf(cfg.Out, "Preço estimado para o carro de teste (%s %s %d, %d km): R$ %.2f\n",
				sampleCar.Marca, sampleCar.Modelo, sampleCar.Ano, sampleCar.Quilometragem, price)

			if historyDB != "" {
				if err := recordRun(cmd.Context(), historyDB, a, dataPath, outPath); err != nil {
					return err
				}
				cfg.log.Debug().Str("db", historyDB).Msg("training run recorded")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "data/carros.csv", "Training CSV (Marca,Modelo,Ano,Quilometragem,Preco)")
	cmd.Flags().StringVar(&outPath, "out", artifact.DefaultPath, "Artifact output path (.json, .yaml, .toml)")
	cmd.Flags().StringVar(&historyDB, "history-db", "", "Optional SQLite database to record the run in")
	return cmd
}

func recordRun(ctx context.Context, dbPath string, a *artifact.Artifact, dataPath, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.Record(ctx, a, dataPath, outPath)
	return err
}
