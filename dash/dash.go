// Package dash renders the charts described by a configuration file into an
// HTML page or standalone SVG files, and keeps them up to date when their
// inputs change.
package dash

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/midbel/epicharts"
	"gopkg.in/yaml.v2"
)

var (
	DefaultWidth  = 600.0
	DefaultHeight = 400.0

	DefaultTitle = "epicharts"
)

const (
	KindLine = "line"
	KindPie  = "pie"

	SeriesTotal = "total"
)

type Datasets struct {
	Infections string `yaml:"infections"`
	Total      string `yaml:"total"`
	Pie        string `yaml:"pie"`
}

// Files returns the dataset files that are not embedded.
func (d Datasets) Files() []string {
	var list []string
	for _, f := range []string{d.Infections, d.Total, d.Pie} {
		if f != "" {
			list = append(list, f)
		}
	}
	return list
}

type Chart struct {
	Kind   string  `yaml:"kind"`
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Series string  `yaml:"series"`
	Group  string  `yaml:"group"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Output string  `yaml:"output"`
}

type Config struct {
	Title     string  `yaml:"title"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Output    string  `yaml:"output"`
	Layer     bool    `yaml:"layer"`
	LayerIcon string  `yaml:"layer-icon"`

	Margin epicharts.Margin    `yaml:"margin"`
	Line   epicharts.LineStyle `yaml:"line"`
	Pie    epicharts.PieStyle  `yaml:"pie"`

	Datasets Datasets `yaml:"datasets"`
	Charts   []Chart  `yaml:"charts"`
}

func Default() Config {
	return Config{
		Title:  DefaultTitle,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margin: epicharts.DefaultMargin,
		Line:   epicharts.DefaultLineStyle(),
		Pie:    epicharts.DefaultPieStyle(),
	}
}

// Load decodes the configuration file and resolves the dataset and output
// paths relative to its directory.
func Load(file string) (Config, error) {
	r, err := os.Open(file)
	if err != nil {
		return Config{}, err
	}
	defer r.Close()

	cfg, err := Decode(r)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", file, err)
	}
	dir := filepath.Dir(file)
	cfg.Datasets.Infections = resolve(dir, cfg.Datasets.Infections)
	cfg.Datasets.Total = resolve(dir, cfg.Datasets.Total)
	cfg.Datasets.Pie = resolve(dir, cfg.Datasets.Pie)
	cfg.Output = resolve(dir, cfg.Output)
	for i := range cfg.Charts {
		cfg.Charts[i].Output = resolve(dir, cfg.Charts[i].Output)
	}
	return cfg, nil
}

// Decode reads a configuration on top of the default one and validates it.
func Decode(r io.Reader) (Config, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	var (
		cfg    = Default()
		colors = cfg.Pie.Colors
	)
	// strict decoding refuses keys already present in a map
	cfg.Pie.Colors = nil
	if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
		return cfg, DecodeError{Message: err.Error()}
	}
	if cfg.Pie.Colors == nil {
		cfg.Pie.Colors = colors
	} else {
		for k, v := range colors {
			if _, ok := cfg.Pie.Colors[k]; !ok {
				cfg.Pie.Colors[k] = v
			}
		}
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid option, not only the first one.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, OptionError{Option: "width", Reason: "must be positive"})
	}
	if c.Height <= 0 {
		errs = append(errs, OptionError{Option: "height", Reason: "must be positive"})
	}
	if c.Margin.Top < 0 || c.Margin.Right < 0 || c.Margin.Bottom < 0 || c.Margin.Left < 0 {
		errs = append(errs, OptionError{Option: "margin", Reason: "must not be negative"})
	}
	for k, v := range c.Pie.Colors {
		if _, err := epicharts.ParseHex(v); err != nil {
			errs = append(errs, OptionError{Section: "pie.colors", Option: k, Reason: err.Error()})
		}
	}
	seen := make(map[string]struct{})
	for i, ch := range c.Charts {
		section := fmt.Sprintf("charts[%d]", i)
		switch ch.Kind {
		case KindLine, KindPie:
		default:
			errs = append(errs, OptionError{Section: section, Option: "kind", Reason: fmt.Sprintf("%q: unknown chart kind", ch.Kind)})
		}
		if ch.ID == "" {
			errs = append(errs, OptionError{Section: section, Option: "id", Reason: "missing"})
		} else if _, ok := seen[ch.ID]; ok {
			errs = append(errs, OptionError{Section: section, Option: "id", Reason: fmt.Sprintf("%q: duplicate", ch.ID)})
		}
		seen[ch.ID] = struct{}{}
		if ch.Width < 0 || ch.Height < 0 {
			errs = append(errs, OptionError{Section: section, Option: "size", Reason: "must not be negative"})
		}
	}
	return errors.Join(errs...)
}

// Size returns the size of the svg of a chart, falling back on the size of
// the configuration.
func (c Config) Size(ch Chart) (float64, float64) {
	w, h := ch.Width, ch.Height
	if w == 0 {
		w = c.Width
	}
	if h == 0 {
		h = c.Height
	}
	return w, h
}

func resolve(dir, file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}
