package store

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midbel/epicharts"
	"github.com/midbel/epicharts/dom"
	"golang.org/x/net/html"
)

const linePage = `<!DOCTYPE html>
<html><body>
<svg id="lineChart" style="width: 600px; height: 400px"></svg>
<svg id="tiny" width="50" height="50"></svg>
</body></html>`

func parsePage(t *testing.T, str string) *html.Node {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(str))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestNewLineStore(t *testing.T) {
	s, err := NewLineStore()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.InfectionList) == 0 {
		t.Fatal("no infection series loaded")
	}
	if len(s.TotalInfection) == 0 {
		t.Fatal("no total infections loaded")
	}
	data, err := s.Series(s.InfectionList[0].Name)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(s.InfectionList[0].Data) {
		t.Errorf("series length = %d, want %d", len(data), len(s.InfectionList[0].Data))
	}
	if _, err := s.Series("nowhere"); !errors.Is(err, dom.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown series, got %v", err)
	}
}

func TestLoadLineStore(t *testing.T) {
	dir := t.TempDir()
	var (
		infections = filepath.Join(dir, "infections.json")
		total      = filepath.Join(dir, "total.json")
	)
	if err := os.WriteFile(infections, []byte(`{"infections": [{"name": "north", "data": [1, 2, 3]}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(total, []byte(`[1, 2, 3]`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadLineStore(infections, total)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.InfectionList) != 1 || s.InfectionList[0].Name != "north" {
		t.Errorf("unexpected infections: %+v", s.InfectionList)
	}
	if _, err := LoadLineStore(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDrawLineChart(t *testing.T) {
	var (
		doc = parsePage(t, linePage)
		s   = LineStore{
			Margin: epicharts.DefaultMargin,
			Style:  epicharts.DefaultLineStyle(),
		}
	)
	if err := s.DrawLineChart(doc, "#lineChart", []float64{0, 5, 10}, "infections"); err != nil {
		t.Fatal(err)
	}
	svg, _ := dom.GetElementByID(doc, "lineChart")

	groups := svg.FirstChild
	if v, _ := dom.GetAttr(groups, "transform"); v != "translate(60, 30)" {
		t.Errorf("group transform = %s", v)
	}
	lines := dom.QueryClass(svg, "line")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if d, _ := dom.GetAttr(lines[0], "d"); d != "M0,320L260,160L520,0" {
		t.Errorf("path = %s", d)
	}
	if v, _ := dom.GetAttr(lines[0], "stroke"); v != "red" {
		t.Errorf("stroke = %s, want red", v)
	}

	markers := dom.QueryAll(svg, "circle")
	if len(markers) != 3 {
		t.Fatalf("markers = %d, want 3", len(markers))
	}
	if v, _ := dom.GetAttr(markers[1], "data-tooltip"); v != "day: 2, infections: 5" {
		t.Errorf("tooltip = %s", v)
	}
	if v, _ := dom.Style(markers[1], "opacity"); v != "0" {
		t.Errorf("marker opacity = %s, want 0", v)
	}
	if v, _ := dom.GetAttr(markers[2], "cy"); v != "0" {
		t.Errorf("marker cy = %s, want 0", v)
	}

	var title bool
	for _, txt := range dom.QueryAll(groups, "text") {
		if dom.Text(txt) == "infections" {
			title = true
			if v, _ := dom.GetAttr(txt, "transform"); v != "translate(260, 360)" {
				t.Errorf("title transform = %s", v)
			}
		}
	}
	if !title {
		t.Error("title not drawn")
	}
	if n := len(dom.QueryClass(svg, "grid")); n == 0 {
		t.Error("grid lines not drawn")
	}

	if err := s.DrawLineChart(doc, "lineChart", []float64{1, 2}, "again"); err != nil {
		t.Fatal(err)
	}
	if n := len(dom.QueryClass(dom.Body(doc), TooltipClass)); n != 1 {
		t.Errorf("tooltips = %d, want 1", n)
	}

	if err := s.ClearLineChart(doc, "#lineChart"); err != nil {
		t.Fatal(err)
	}
	if svg.FirstChild != nil {
		t.Error("svg not cleared")
	}
}

func TestDrawLineChartMissingValues(t *testing.T) {
	var (
		doc = parsePage(t, linePage)
		s   LineStore
	)
	if err := s.DrawLineChart(doc, "lineChart", []float64{4, math.NaN(), 8}, ""); err != nil {
		t.Fatal(err)
	}
	svg, _ := dom.GetElementByID(doc, "lineChart")
	if n := len(dom.QueryAll(svg, "circle")); n != 2 {
		t.Errorf("markers = %d, want 2", n)
	}
	lines := dom.QueryClass(svg, "line")
	if d, _ := dom.GetAttr(lines[0], "d"); d != "M0,160M520,0" {
		t.Errorf("path = %s", d)
	}
}

func TestDrawLineChartErrors(t *testing.T) {
	doc := parsePage(t, linePage)
	s := LineStore{Margin: epicharts.DefaultMargin}
	tests := []struct {
		name string
		id   string
		data []float64
		err  error
	}{
		{name: "empty", id: "lineChart", err: epicharts.ErrEmptyData},
		{name: "missing", id: "nowhere", data: []float64{1}, err: dom.ErrNotFound},
		{name: "too small", id: "tiny", data: []float64{1}, err: epicharts.ErrTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.DrawLineChart(doc, tt.id, tt.data, "")
			if !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestDrawLineChartStandalone(t *testing.T) {
	var (
		svg = dom.NewSVG("chart", 400, 300)
		s   LineStore
	)
	if err := s.DrawLineChart(svg, "chart", []float64{3}, "single"); err != nil {
		t.Fatal(err)
	}
	markers := dom.QueryAll(svg, "circle")
	if len(markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(markers))
	}
	// a single point sits in the middle of the x axis
	if v, _ := dom.GetAttr(markers[0], "cx"); v != "160" {
		t.Errorf("cx = %s, want 160", v)
	}
	var buf bytes.Buffer
	if err := dom.Render(&buf, svg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<title>day: 1, infections: 3</title>") {
		t.Errorf("tooltip title missing: %s", buf.String())
	}
}
