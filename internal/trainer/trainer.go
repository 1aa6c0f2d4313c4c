// Package trainer fits a price model from a training CSV and persists it as an artifact.
package trainer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"carprice/internal/artifact"
	"carprice/internal/dataset"
	"carprice/internal/features"
	"carprice/internal/regression"
)

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

// Rows projects records onto their feature part.
func Rows(records []dataset.Record) []features.Row {
	rows := make([]features.Row, len(records))
	for i, r := range records {
		rows[i] = features.Row{Marca: r.Marca, Modelo: r.Modelo, Ano: r.Ano, Quilometragem: r.Quilometragem}
	}
	return rows
}

// Train one-hot encodes records (first category of each group dropped), fits OLS on
// everything but Preco, and returns the resulting artifact.
func Train(records []dataset.Record) (*artifact.Artifact, error) {
	if len(records) == 0 {
		return nil, dataset.ErrEmpty
	}
	rows := Rows(records)
	schema := features.Fit(rows)
	X := schema.Design(rows)
	y := make([]float64, len(records))
	for i, r := range records {
		y[i] = r.Preco
	}
	model, err := regression.Fit(X, y)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	r2, rmse, err := regression.Score(model, X, y)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	a := &artifact.Artifact{
		Version:   artifact.FormatVersion,
		ID:        uuid.NewString(),
		TrainedAt: now(),
		Rows:      len(records),
		Schema:    schema,
		Model:     model,
		Metrics:   artifact.Metrics{R2: r2, RMSE: rmse},
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run reads dataPath, trains, and writes the artifact to outPath.
func Run(dataPath, outPath string, log zerolog.Logger) (*artifact.Artifact, error) {
	log.Info().Str("data", dataPath).Msg("loading dataset")
	records, err := dataset.ReadCSV(dataPath)
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(records)).Msg("training model")
	a, err := Train(records)
	if err != nil {
		return nil, err
	}
	if err := artifact.Save(outPath, a); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	log.Info().
		Str("artifact", outPath).
		Str("model_id", a.ID).
		Int("columns", len(a.Columns())).
		Float64("r2", a.Metrics.R2).
		Float64("rmse", a.Metrics.RMSE).
		Msg("training complete")
	return a, nil
}
