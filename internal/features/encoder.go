// Package features turns raw car attributes into the numeric vectors the regression
// consumes.
//
// Training and serving use two different encoders on purpose-built paths:
//
//   - Design (training) one-hot encodes each categorical field and drops the first,
//     lexicographically smallest, category of every group.
//   - Encode (serving) one-hot encodes without dropping anything; Reindex then aligns
//     the row to the trained column list, zero-filling missing columns and discarding
//     extras.
//
// The reindex step is what makes the two agree: the dropped reference category has no
// trained column, so it ends up all zeros exactly as it did in training. A category never
// seen in training is handled the same way and silently encodes as an all-zero group.
package features

import (
	"sort"
	"strconv"
)

// Feature and field names. Column names for categories are "<field>_<value>".
const (
	ColAno           = "Ano"
	ColQuilometragem = "Quilometragem"
	FieldMarca       = "Marca"
	FieldModelo      = "Modelo"
)

// Categorical lists the one-hot encoded fields in column order.
var Categorical = []string{FieldMarca, FieldModelo}

// Row is a single unlabelled observation.
type Row struct {
	Marca         string
	Modelo        string
	Ano           int
	Quilometragem int
}

func (r Row) category(field string) string {
	switch field {
	case FieldMarca:
		return r.Marca
	case FieldModelo:
		return r.Modelo
	}
	return ""
}

// Schema is what training learns about the feature space.
type Schema struct {
	// Columns is the ordered list of model inputs.
	Columns []string `json:"columns" yaml:"columns" toml:"columns"`
	// Levels holds the sorted distinct training values per categorical field,
	// reference category first.
	Levels map[string][]string `json:"levels,omitempty" yaml:"levels,omitempty" toml:"levels,omitempty"`
}

// ColumnName returns the one-hot column name for a category value.
func ColumnName(field, value string) string { return field + "_" + value }

// Fit learns the categorical levels of rows and the resulting training columns:
// numeric columns first, then one group per categorical field with its first level dropped.
func Fit(rows []Row) Schema {
	s := Schema{
		Columns: []string{ColAno, ColQuilometragem},
		Levels:  make(map[string][]string, len(Categorical)),
	}
	for _, field := range Categorical {
		seen := make(map[string]struct{})
		var levels []string
		for _, r := range rows {
			v := r.category(field)
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			levels = append(levels, v)
		}
		sort.Strings(levels)
		s.Levels[field] = levels
		for _, v := range dropFirst(levels) {
			s.Columns = append(s.Columns, ColumnName(field, v))
		}
	}
	return s
}

func dropFirst(levels []string) []string {
	if len(levels) == 0 {
		return nil
	}
	return levels[1:]
}

// Design builds the training design matrix for rows, one slice per row, in s.Columns
// order. Categories outside s.Levels encode as zeros, like the reference category.
func (s Schema) Design(rows []Row) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		vec := make([]float64, 0, len(s.Columns))
		vec = append(vec, float64(r.Ano), float64(r.Quilometragem))
		for _, field := range Categorical {
			v := r.category(field)
			for _, level := range dropFirst(s.Levels[field]) {
				if level == v {
					vec = append(vec, 1)
				} else {
					vec = append(vec, 0)
				}
			}
		}
		out[i] = vec
	}
	return out
}

// Encode one-hot encodes a single row without dropping any category.
func Encode(r Row) map[string]float64 {
	enc := map[string]float64{
		ColAno:           float64(r.Ano),
		ColQuilometragem: float64(r.Quilometragem),
	}
	for _, field := range Categorical {
		enc[ColumnName(field, r.category(field))] = 1
	}
	return enc
}

// Reindex aligns an encoded row to columns: absent columns become 0 and
// entries not listed in columns are dropped.
func Reindex(encoded map[string]float64, columns []string) []float64 {
	out := make([]float64, len(columns))
	for i, c := range columns {
		out[i] = encoded[c]
	}
	return out
}

// Unknown reports the categorical fields of r whose value was not seen in training.
// It returns nil when the schema carries no level information.
func (s Schema) Unknown(r Row) []string {
	if len(s.Levels) == 0 {
		return nil
	}
	var fields []string
	for _, field := range Categorical {
		levels := s.Levels[field]
		v := r.category(field)
		i := sort.SearchStrings(levels, v)
		if i >= len(levels) || levels[i] != v {
			fields = append(fields, field)
		}
	}
	return fields
}

// Describe renders a row for logs.
func (r Row) Describe() string {
	return r.Marca + "/" + r.Modelo + "/" + strconv.Itoa(r.Ano) + "/" + strconv.Itoa(r.Quilometragem)
}
