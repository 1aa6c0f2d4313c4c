package trainer

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"carprice/internal/artifact"
	"carprice/internal/dataset"
	"carprice/internal/features"
)

type car struct {
	marca, modelo string
	base          float64
}

var fleet = []car{
	{"Ford", "Ka", 24000},
	{"Fiat", "Uno", 20000},
	{"Fiat", "Mobi", 22000},
	{"Chevrolet", "Onix", 30000},
	{"Chevrolet", "Prisma", 31000},
	{"VW", "Polo", 36000},
}

// linearRecords generates rows whose price is an exact linear function of the
// encoded features, so a correct fit reproduces every target.
func linearRecords() []dataset.Record {
	var out []dataset.Record
	for i, c := range fleet {
		for k := 0; k < 4; k++ {
			ano := 2014 + (i+k*2)%8
			km := 15000 + 11000*k + 3000*i
			preco := c.base + 1500*float64(ano-2014) - 0.08*float64(km)
			out = append(out, dataset.Record{Marca: c.marca, Modelo: c.modelo, Ano: ano, Quilometragem: km, Preco: preco})
		}
	}
	return out
}

func predictRow(a *artifact.Artifact, r dataset.Record) float64 {
	x := features.Reindex(features.Encode(features.Row{Marca: r.Marca, Modelo: r.Modelo, Ano: r.Ano, Quilometragem: r.Quilometragem}), a.Columns())
	y, _ := a.Model.Predict(x)
	return y
}

func TestTrain_FitsTrainingRows(t *testing.T) {
	recs := linearRecords()
	a, err := Train(recs)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	wantCols := []string{
		"Ano", "Quilometragem",
		"Marca_Fiat", "Marca_Ford", "Marca_VW",
		"Modelo_Mobi", "Modelo_Onix", "Modelo_Polo", "Modelo_Prisma", "Modelo_Uno",
	}
	if !reflect.DeepEqual(a.Columns(), wantCols) {
		t.Fatalf("columns=%v", a.Columns())
	}
	if a.Rows != len(recs) || a.ID == "" || a.Version != artifact.FormatVersion {
		t.Fatalf("unexpected metadata: %+v", a)
	}
	if a.Metrics.R2 < 0.999999 {
		t.Fatalf("r2=%v", a.Metrics.R2)
	}
	for _, r := range recs {
		got := predictRow(a, r)
		if math.Abs(got-r.Preco) > 1e-3 {
			t.Fatalf("%s %s %d: predicted %v want %v", r.Marca, r.Modelo, r.Ano, got, r.Preco)
		}
	}
}

func TestTrain_Empty(t *testing.T) {
	if _, err := Train(nil); err == nil {
		t.Fatalf("expected error on empty records")
	}
}

func TestRun_WritesArtifact(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("Marca,Modelo,Ano,Quilometragem,Preco\n")
	for _, r := range linearRecords() {
		b.WriteString(r.Marca + "," + r.Modelo + "," + itoa(r.Ano) + "," + itoa(r.Quilometragem) + "," + ftoa(r.Preco) + "\n")
	}
	data := filepath.Join(dir, "carros.csv")
	if err := os.WriteFile(data, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := filepath.Join(dir, "out", "modelo_carro.yaml")
	a, err := Run(data, out, zerolog.Nop())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	loaded, err := artifact.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != a.ID || !loaded.TrainedAt.Equal(fixed) {
		t.Fatalf("loaded artifact differs: %+v", loaded)
	}
	if !reflect.DeepEqual(loaded.Model, a.Model) {
		t.Fatalf("model changed through persistence: %+v vs %+v", loaded.Model, a.Model)
	}
}

func TestRun_BadPath(t *testing.T) {
	if _, err := Run(filepath.Join(t.TempDir(), "missing.csv"), filepath.Join(t.TempDir(), "m.json"), zerolog.Nop()); err == nil {
		t.Fatalf("expected error for missing dataset")
	}
}
