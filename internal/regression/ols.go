// Package regression fits and applies ordinary least squares linear models.
package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Model is a fitted linear model: y = Intercept + Coefficients·x.
type Model struct {
	Intercept    float64   `json:"intercept" yaml:"intercept" toml:"intercept"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients" toml:"coefficients"`
}

// rankTol is the singular value cutoff relative to the largest one.
const rankTol = 1e-10

// ErrNoRows is returned when fitting on an empty design matrix.
var ErrNoRows = errors.New("regression: no rows")

// Fit solves min ||y - b0 - Xb||² over X (rows × features).
//
// X and y are centred so the intercept falls out of the means, then the centred
// problem is solved with a thin SVD. Singular values below a relative tolerance are
// discarded, giving the minimum-norm solution when columns are collinear.
func Fit(X [][]float64, y []float64) (Model, error) {
	n := len(X)
	if n == 0 {
		return Model{}, ErrNoRows
	}
	if len(y) != n {
		return Model{}, fmt.Errorf("regression: %d rows but %d targets", n, len(y))
	}
	p := len(X[0])
	for i, row := range X {
		if len(row) != p {
			return Model{}, fmt.Errorf("regression: row %d has %d features, want %d", i, len(row), p)
		}
	}

	yMean := stat.Mean(y, nil)
	if p == 0 {
		return Model{Intercept: yMean, Coefficients: []float64{}}, nil
	}

	xMean := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		xMean[j] = stat.Mean(col, nil)
	}

	a := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i, row := range X {
		for j, v := range row {
			a.Set(i, j, v-xMean[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return Model{}, errors.New("regression: SVD factorization failed")
	}
	coef := make([]float64, p)
	if rank := svd.Rank(rankTol); rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, b, rank)
		for j := range coef {
			coef[j] = beta.AtVec(j)
		}
	}

	m := Model{
		Intercept:    yMean - floats.Dot(xMean, coef),
		Coefficients: coef,
	}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Validate checks that every parameter is finite.
func (m Model) Validate() error {
	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return errors.New("regression: non-finite intercept")
	}
	for j, c := range m.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("regression: non-finite coefficient %d", j)
		}
	}
	return nil
}

// Predict applies the model to one feature vector.
func (m Model) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("regression: got %d features, model expects %d", len(x), len(m.Coefficients))
	}
	return m.Intercept + floats.Dot(m.Coefficients, x), nil
}

// Score returns the coefficient of determination and the root mean squared error of
// m over (X, y).
func Score(m Model, X [][]float64, y []float64) (r2, rmse float64, err error) {
	if len(X) == 0 {
		return 0, 0, ErrNoRows
	}
	if len(X) != len(y) {
		return 0, 0, fmt.Errorf("regression: %d rows but %d targets", len(X), len(y))
	}
	yMean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i, row := range X {
		pred, err := m.Predict(row)
		if err != nil {
			return 0, 0, err
		}
		d := y[i] - pred
		ssRes += d * d
		t := y[i] - yMean
		ssTot += t * t
	}
	rmse = math.Sqrt(ssRes / float64(len(y)))
	switch {
	case ssTot > 0:
		r2 = 1 - ssRes/ssTot
	case ssRes <= 1e-12:
		r2 = 1
	}
	return r2, rmse, nil
}
