// Package store holds the chart datasets and the draw and clear actions that
// turn them into SVG.
package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/midbel/epicharts/dom"
	"golang.org/x/exp/slices"
)

//go:embed data/*.json
var embedded embed.FS

const (
	InfectionFile = "infection_data.json"
	TotalFile     = "total_infection.json"
	PieFile       = "data.json"
)

type InfectionSeries struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

type infectionFile struct {
	Infections []InfectionSeries `json:"infections"`
}

type PieData struct {
	Title string  `json:"title"`
	Rate  float64 `json:"rate"`
}

type PieGroup struct {
	Name string    `json:"name"`
	Data []PieData `json:"data"`
}

// DecodeInfections reads a document shaped as {"infections": [...]}.
func DecodeInfections(r io.Reader) ([]InfectionSeries, error) {
	var f infectionFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding infections: %w", err)
	}
	return f.Infections, nil
}

func DecodeTotal(r io.Reader) ([]float64, error) {
	var list []float64
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding total infections: %w", err)
	}
	return list, nil
}

func DecodePie(r io.Reader) ([]PieGroup, error) {
	var list []PieGroup
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding pie data: %w", err)
	}
	return list, nil
}

// Open returns the content of file, or of the embedded dataset named name
// when file is empty.
func Open(file, name string) (io.ReadCloser, error) {
	if file != "" {
		return os.Open(file)
	}
	buf, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(buf)), nil
}

func decodeFile[T any](file, name string, decode func(io.Reader) (T, error)) (T, error) {
	r, err := Open(file, name)
	if err != nil {
		var zero T
		return zero, err
	}
	defer r.Close()
	return decode(r)
}

func (s *LineStore) Series(name string) ([]float64, error) {
	x := slices.IndexFunc(s.InfectionList, func(is InfectionSeries) bool {
		return is.Name == name
	})
	if x < 0 {
		return nil, fmt.Errorf("%s: infection series: %w", name, dom.ErrNotFound)
	}
	return s.InfectionList[x].Data, nil
}

func (s *PieStore) Group(name string) ([]PieData, error) {
	x := slices.IndexFunc(s.Data, func(g PieGroup) bool {
		return g.Name == name
	})
	if x < 0 {
		return nil, fmt.Errorf("%s: pie group: %w", name, dom.ErrNotFound)
	}
	return s.Data[x].Data, nil
}
