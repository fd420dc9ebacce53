package epicharts

import (
	"golang.org/x/exp/maps"
)

const DefaultTooltip = "day: {day}, infections: {value}"

type LineStyle struct {
	Stroke       string  `yaml:"stroke"`
	StrokeWidth  float64 `yaml:"stroke-width"`
	MarkerRadius float64 `yaml:"marker-radius"`
	Grid         bool    `yaml:"grid"`
	GridOpacity  float64 `yaml:"grid-opacity"`
	Ticks        int     `yaml:"ticks"`
	// Tooltip is the marker tooltip template: {day} is replaced by the one
	// based index of the point and {value} by its value.
	Tooltip string `yaml:"tooltip"`
}

func DefaultLineStyle() LineStyle {
	return LineStyle{
		Stroke:       "red",
		StrokeWidth:  2,
		MarkerRadius: 3,
		Grid:         true,
		GridOpacity:  0.1,
		Ticks:        DefaultTicks,
		Tooltip:      DefaultTooltip,
	}
}

type PieStyle struct {
	Radius    float64           `yaml:"radius"`
	CenterX   float64           `yaml:"center-x"`
	CenterY   float64           `yaml:"center-y"`
	Distance  float64           `yaml:"distance"`
	Extension float64           `yaml:"extension"`
	Colors    map[string]string `yaml:"colors"`
	TitleFill string            `yaml:"title-fill"`
}

func DefaultPieStyle() PieStyle {
	return PieStyle{
		Radius:    50,
		CenterX:   150,
		CenterY:   120,
		Distance:  15,
		Extension: 85,
		Colors:    maps.Clone(AreaColors),
		TitleFill: "white",
	}
}
