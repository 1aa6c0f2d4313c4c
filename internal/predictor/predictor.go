package predictor

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"carprice/internal/artifact"
	"carprice/internal/features"
)

// Predictor applies a loaded artifact to single car descriptions.
type Predictor struct {
	art       *artifact.Artifact
	path      string
	loadErr   error
	log       zerolog.Logger
	startTime time.Time
}

// Config encapsulates Predictor construction.
type Config struct {
	// Artifact is the loaded model; nil means not loaded.
	Artifact *artifact.Artifact
	// Path the artifact was (or should have been) loaded from, for status output.
	Path string
	// LoadErr is the reason Artifact is nil, if known.
	LoadErr error
	Logger  *zerolog.Logger
}

// New returns a Predictor serving a. A nil a yields a Predictor that is never ready.
func New(a *artifact.Artifact) *Predictor {
	return NewWithConfig(Config{Artifact: a})
}

// NewWithConfig constructs a Predictor from Config.
func NewWithConfig(cfg Config) *Predictor {
	p := &Predictor{
		art:       cfg.Artifact,
		path:      cfg.Path,
		loadErr:   cfg.LoadErr,
		log:       zerolog.Nop(),
		startTime: time.Now(),
	}
	if cfg.Logger != nil {
		p.log = *cfg.Logger
	}
	if p.art == nil && p.loadErr == nil {
		p.loadErr = errors.New("no artifact")
	}
	return p
}

// Open loads the artifact at path once. The returned Predictor is always usable; on
// failure it is not ready and the load error is also returned for logging.
func Open(path string, log *zerolog.Logger) (*Predictor, error) {
	a, err := artifact.Load(path)
	p := NewWithConfig(Config{Artifact: a, Path: path, LoadErr: err, Logger: log})
	return p, err
}

// Ready reports whether an artifact is loaded.
func (p *Predictor) Ready() bool { return p.art != nil }

// Artifact returns the loaded artifact, or nil.
func (p *Predictor) Artifact() *artifact.Artifact { return p.art }

// Predict estimates the price of one car.
//
// The row is one-hot encoded without dropping a reference category and then reindexed
// against the trained columns. Categories never seen in training therefore contribute
// nothing; this is counted and logged but deliberately not rejected.
func (p *Predictor) Predict(marca, modelo string, ano, quilometragem int) (price float64, err error) {
	if p.art == nil {
		predictionsTotal.WithLabelValues("unavailable").Inc()
		return 0, ErrModelUnavailable(MsgModelUnavailable)
	}
	defer func() {
		if r := recover(); r != nil {
			err = ErrInvalidInput(fmt.Errorf("prediction panic: %v", r))
		}
		if err != nil {
			predictionsTotal.WithLabelValues("invalid").Inc()
			return
		}
		predictionsTotal.WithLabelValues("ok").Inc()
	}()

	row := features.Row{Marca: marca, Modelo: modelo, Ano: ano, Quilometragem: quilometragem}
	if unknown := p.art.Schema.Unknown(row); len(unknown) > 0 {
		for _, f := range unknown {
			unknownCategoryTotal.WithLabelValues(f).Inc()
		}
		p.log.Debug().Strs("fields", unknown).Str("car", row.Describe()).Msg("unseen category encoded as zeros")
	}
	x := features.Reindex(features.Encode(row), p.art.Columns())
	y, err := p.art.Model.Predict(x)
	if err != nil {
		return 0, ErrInvalidInput(err)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, ErrInvalidInput(fmt.Errorf("non-finite prediction for %s", row.Describe()))
	}
	return y, nil
}
