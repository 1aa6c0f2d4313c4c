// Package artifact defines the persisted model bundle: the fitted linear model together
// with the exact feature columns it was trained on. Both halves are needed to reproduce
// the training-time encoding at inference time, so they are always stored and loaded
// as one unit.
package artifact

import (
	"errors"
	"fmt"
	"time"

	"carprice/internal/features"
	"carprice/internal/regression"
)

// FormatVersion is bumped whenever the stored layout changes incompatibly.
const FormatVersion = 1

// Metrics are in-sample fit statistics recorded at training time.
type Metrics struct {
	R2   float64 `json:"r2" yaml:"r2" toml:"r2"`
	RMSE float64 `json:"rmse" yaml:"rmse" toml:"rmse"`
}

// Artifact is immutable once trained.
type Artifact struct {
	Version   int              `json:"version" yaml:"version" toml:"version"`
	ID        string           `json:"id" yaml:"id" toml:"id"`
	TrainedAt time.Time        `json:"trained_at" yaml:"trained_at" toml:"trained_at"`
	Rows      int              `json:"rows" yaml:"rows" toml:"rows"`
	Schema    features.Schema  `json:"schema" yaml:"schema" toml:"schema"`
	Model     regression.Model `json:"model" yaml:"model" toml:"model"`
	Metrics   Metrics          `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// Columns returns the ordered feature columns the model expects.
func (a *Artifact) Columns() []string { return a.Schema.Columns }

// Validate checks the invariants every loaded or saved artifact must hold.
func (a *Artifact) Validate() error {
	if a == nil {
		return errors.New("artifact: nil")
	}
	if a.Version < 1 || a.Version > FormatVersion {
		return fmt.Errorf("artifact: unsupported version %d", a.Version)
	}
	if len(a.Schema.Columns) == 0 {
		return errors.New("artifact: no columns")
	}
	if len(a.Model.Coefficients) != len(a.Schema.Columns) {
		return fmt.Errorf("artifact: %d coefficients for %d columns", len(a.Model.Coefficients), len(a.Schema.Columns))
	}
	seen := make(map[string]struct{}, len(a.Schema.Columns))
	for _, c := range a.Schema.Columns {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("artifact: duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return a.Model.Validate()
}
