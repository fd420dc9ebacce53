package dash

import (
	"fmt"

	"github.com/midbel/epicharts/store"
)

// Stores gives the data of the charts from the line and pie stores.
type Stores struct {
	Lines *store.LineStore
	Pies  *store.PieStore
}

// LoadStores reads the datasets of the configuration and applies its styles
// to the stores.
func LoadStores(cfg Config) (Stores, error) {
	var (
		s   Stores
		err error
	)
	s.Lines, err = store.LoadLineStore(cfg.Datasets.Infections, cfg.Datasets.Total)
	if err != nil {
		return s, fmt.Errorf("loading line datasets: %w", err)
	}
	s.Lines.Margin = cfg.Margin
	s.Lines.Style = cfg.Line

	s.Pies, err = store.LoadPieStore(cfg.Datasets.Pie)
	if err != nil {
		return s, fmt.Errorf("loading pie dataset: %w", err)
	}
	s.Pies.Style = cfg.Pie
	return s, nil
}

// LineSerie returns the infection series named by the chart. An empty name
// selects the total infections.
func (s Stores) LineSerie(c Chart) ([]float64, error) {
	if c.Series == "" || c.Series == SeriesTotal {
		return s.Lines.TotalInfection, nil
	}
	return s.Lines.Series(c.Series)
}

// PieSerie returns the group named by the chart, or the first group when no
// name is given.
func (s Stores) PieSerie(c Chart) ([]store.PieData, error) {
	if c.Group != "" {
		return s.Pies.Group(c.Group)
	}
	if len(s.Pies.Data) == 0 {
		return nil, fmt.Errorf("no pie group available")
	}
	return s.Pies.Data[0].Data, nil
}
