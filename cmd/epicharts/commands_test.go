package main

import (
	"testing"

	"github.com/midbel/epicharts/dash"
)

func TestChartFlagsConfig(t *testing.T) {
	f := ChartFlags{
		Title:  "Wuhan",
		Width:  800,
		Height: 500,
		Output: "wuhan.svg",
	}
	cfg := f.config(dash.KindLine, dash.Datasets{Total: "total.json"})
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 500 {
		t.Errorf("size = %vx%v, want 800x500", cfg.Width, cfg.Height)
	}
	if len(cfg.Charts) != 1 {
		t.Fatalf("charts = %d, want 1", len(cfg.Charts))
	}
	c := cfg.Charts[0]
	if c.Kind != dash.KindLine || c.Title != "Wuhan" || c.Output != "wuhan.svg" {
		t.Errorf("unexpected chart: %+v", c)
	}
	if cfg.Datasets.Total != "total.json" {
		t.Errorf("datasets not set: %+v", cfg.Datasets)
	}
}
