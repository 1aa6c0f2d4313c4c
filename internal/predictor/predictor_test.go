package predictor

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"carprice/internal/artifact"
	"carprice/internal/features"
	"carprice/internal/regression"
)

// testArtifact models price = 1000 + 10*(Ano) - 0.1*km + 5000*Ford + 2000*Ka
// with Chevrolet/Onix as the dropped reference levels.
func testArtifact() *artifact.Artifact {
	return &artifact.Artifact{
		Version:   artifact.FormatVersion,
		ID:        "test-model",
		TrainedAt: time.Unix(1700000000, 0).UTC(),
		Rows:      10,
		Schema: features.Schema{
			Columns: []string{"Ano", "Quilometragem", "Marca_Ford", "Modelo_Ka"},
			Levels: map[string][]string{
				"Marca":  {"Chevrolet", "Ford"},
				"Modelo": {"Ka", "Onix"},
			},
		},
		Model: regression.Model{Intercept: 1000, Coefficients: []float64{10, -0.1, 5000, 2000}},
	}
}

func TestPredict_NotLoaded(t *testing.T) {
	p := New(nil)
	if p.Ready() {
		t.Fatalf("expected not ready")
	}
	before := testutil.ToFloat64(predictionsTotal.WithLabelValues("unavailable"))
	_, err := p.Predict("Ford", "Ka", 2018, 50000)
	if !IsModelUnavailable(err) {
		t.Fatalf("expected model unavailable, got %v", err)
	}
	if IsInvalidInput(err) {
		t.Fatalf("unavailable must not be reported as invalid input")
	}
	if err.Error() != MsgModelUnavailable {
		t.Fatalf("message=%q", err.Error())
	}
	if got := testutil.ToFloat64(predictionsTotal.WithLabelValues("unavailable")); got != before+1 {
		t.Fatalf("unavailable counter %v -> %v", before, got)
	}
}

func TestPredict_KnownCategories(t *testing.T) {
	p := New(testArtifact())
	got, err := p.Predict("Ford", "Ka", 2018, 50000)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := 1000 + 10*2018.0 - 0.1*50000 + 5000 + 2000
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPredict_ReferenceCategoryEncodesAsZeros(t *testing.T) {
	p := New(testArtifact())
	got, err := p.Predict("Chevrolet", "Onix", 2018, 50000)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := 1000 + 10*2018.0 - 0.1*50000
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPredict_UnknownCategoryIsSilentlyZero(t *testing.T) {
	p := New(testArtifact())
	before := testutil.ToFloat64(unknownCategoryTotal.WithLabelValues("Marca"))
	unknown, err := p.Predict("Tesla", "Ka", 2018, 50000)
	if err != nil {
		t.Fatalf("unknown brand must not error: %v", err)
	}
	reference, err := p.Predict("Chevrolet", "Ka", 2018, 50000)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if unknown != reference {
		t.Fatalf("unknown brand should encode like the zero group: %v vs %v", unknown, reference)
	}
	if got := testutil.ToFloat64(unknownCategoryTotal.WithLabelValues("Marca")); got != before+1 {
		t.Fatalf("unknown counter %v -> %v", before, got)
	}
}

func TestPredict_Idempotent(t *testing.T) {
	p := New(testArtifact())
	a, err1 := p.Predict("Ford", "Onix", 2020, 12345)
	b, err2 := p.Predict("Ford", "Onix", 2020, 12345)
	if err1 != nil || err2 != nil || a != b {
		t.Fatalf("not idempotent: %v/%v %v/%v", a, err1, b, err2)
	}
}

func TestPredict_AlwaysFinite(t *testing.T) {
	p := New(testArtifact())
	for _, marca := range []string{"Ford", "Chevrolet", "Fiat", ""} {
		for _, ano := range []int{1990, 2018, 2030, -1} {
			for _, km := range []int{0, 50000, 1 << 30} {
				y, err := p.Predict(marca, "Ka", ano, km)
				if err != nil {
					t.Fatalf("predict(%s,%d,%d): %v", marca, ano, km, err)
				}
				if math.IsNaN(y) || math.IsInf(y, 0) {
					t.Fatalf("non-finite prediction %v", y)
				}
			}
		}
	}
}

func TestPredict_BrokenArtifactIsInvalidInput(t *testing.T) {
	a := testArtifact()
	a.Model.Coefficients = a.Model.Coefficients[:2]
	p := New(a)
	_, err := p.Predict("Ford", "Ka", 2018, 50000)
	if !IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "absent.json")
	p, err := Open(missing, nil)
	if err == nil || p == nil || p.Ready() {
		t.Fatalf("expected not-ready predictor and error, got p=%v err=%v", p, err)
	}
	st := p.Status()
	if st.State != StateUnavailable || st.Error == "" || st.ModelPath != missing {
		t.Fatalf("unexpected status: %+v", st)
	}

	good := filepath.Join(dir, "m.json")
	if err := artifact.Save(good, testArtifact()); err != nil {
		t.Fatalf("save: %v", err)
	}
	p, err = Open(good, nil)
	if err != nil || !p.Ready() {
		t.Fatalf("open: %v", err)
	}
	st = p.Status()
	if st.State != StateReady || st.ModelID != "test-model" || len(st.Columns) != 4 || st.TrainedAt != 1700000000 {
		t.Fatalf("unexpected status: %+v", st)
	}
}
