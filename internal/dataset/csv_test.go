package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_ReordersByHeader(t *testing.T) {
	in := "Preco,Ano,Marca,Extra,Modelo,Quilometragem\n30000,2018,Ford,x,Ka,50000\n45000.5, 2021 ,VW,y,Polo,20000\n"
	recs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("rows=%d", len(recs))
	}
	want := Record{Marca: "Ford", Modelo: "Ka", Ano: 2018, Quilometragem: 50000, Preco: 30000}
	if recs[0] != want {
		t.Fatalf("got %+v want %+v", recs[0], want)
	}
	if recs[1].Ano != 2021 || recs[1].Preco != 45000.5 {
		t.Fatalf("unexpected second row: %+v", recs[1])
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty input", "", "missing header"},
		{"missing column", "Marca,Modelo,Ano,Quilometragem\nFord,Ka,2018,50000\n", `missing column "Preco"`},
		{"bad year", "Marca,Modelo,Ano,Quilometragem,Preco\nFord,Ka,abc,50000,30000\n", "line 2: Ano"},
		{"bad mileage", "Marca,Modelo,Ano,Quilometragem,Preco\nFord,Ka,2018,50.5,30000\n", "line 2: Quilometragem"},
		{"bad price", "Marca,Modelo,Ano,Quilometragem,Preco\nFord,Ka,2018,50000,caro\n", "line 2: Preco"},
		{"empty brand", "Marca,Modelo,Ano,Quilometragem,Preco\n,Ka,2018,50000,30000\n", "empty categorical"},
		{"short row", "Marca,Modelo,Ano,Quilometragem,Preco\nFord,Ka\n", "line 2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.in))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error %q does not contain %q", err, c.want)
			}
		})
	}
}

func TestParse_KeepsCategoryWhitespace(t *testing.T) {
	in := "Marca,Modelo,Ano,Quilometragem,Preco\nFord , Ka, 2018 , 50000,30000\n"
	recs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Record{Marca: "Ford ", Modelo: " Ka", Ano: 2018, Quilometragem: 50000, Preco: 30000}
	if recs[0] != want {
		t.Fatalf("got %+v want %+v", recs[0], want)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	_, err := Parse(strings.NewReader("Marca,Modelo,Ano,Quilometragem,Preco\n"))
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestReadCSV(t *testing.T) {
	p := filepath.Join(t.TempDir(), "carros.csv")
	if err := os.WriteFile(p, []byte("\ufeffMarca,Modelo,Ano,Quilometragem,Preco\nFiat,Uno,2015,90000,22000\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := ReadCSV(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 || recs[0].Marca != "Fiat" {
		t.Fatalf("unexpected: %+v", recs)
	}
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
