// Package dataset reads labelled training records from CSV.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header names of the training CSV.
const (
	ColMarca         = "Marca"
	ColModelo        = "Modelo"
	ColAno           = "Ano"
	ColQuilometragem = "Quilometragem"
	ColPreco         = "Preco"
)

// Record is one labelled training row.
type Record struct {
	Marca         string
	Modelo        string
	Ano           int
	Quilometragem int
	Preco         float64
}

// ErrEmpty is returned when a CSV has a header but no data rows.
var ErrEmpty = errors.New("dataset has no rows")

// ReadCSV loads the whole file at path into memory.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	recs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Parse reads records from r. Columns are matched by header name; extra columns are ignored.
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	cols := [...]string{ColMarca, ColModelo, ColAno, ColQuilometragem, ColPreco}
	pos := make(map[string]int, len(cols))
	for _, c := range cols {
		i, ok := idx[c]
		if !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
		pos[c] = i
	}

	var out []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRow(row, pos)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

func parseRow(row []string, pos map[string]int) (Record, error) {
	field := func(name string) string { return strings.TrimSpace(row[pos[name]]) }
	var rec Record
	// Categories stay verbatim; serving matches them untrimmed.
	rec.Marca = row[pos[ColMarca]]
	rec.Modelo = row[pos[ColModelo]]
	if rec.Marca == "" || rec.Modelo == "" {
		return rec, errors.New("empty categorical value")
	}
	var err error
	if rec.Ano, err = strconv.Atoi(field(ColAno)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColAno, err)
	}
	if rec.Quilometragem, err = strconv.Atoi(field(ColQuilometragem)); err != nil {
		return rec, fmt.Errorf("%s: %w", ColQuilometragem, err)
	}
	if rec.Preco, err = strconv.ParseFloat(field(ColPreco), 64); err != nil {
		return rec, fmt.Errorf("%s: %w", ColPreco, err)
	}
	return rec, nil
}
