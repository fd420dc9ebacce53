package store

import (
	"errors"
	"testing"

	"github.com/midbel/epicharts"
	"github.com/midbel/epicharts/dom"
)

const piePage = `<!DOCTYPE html>
<html><body><svg id="pie" width="300" height="240"></svg></body></html>`

func TestNewPieStore(t *testing.T) {
	s, err := NewPieStore()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Data) == 0 {
		t.Fatal("no pie group loaded")
	}
	data, err := s.Group(s.Data[0].Name)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("empty pie group")
	}
	if _, err := s.Group("nowhere"); !errors.Is(err, dom.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown group, got %v", err)
	}
}

func TestDrawPie(t *testing.T) {
	var (
		doc  = parsePage(t, piePage)
		s    = PieStore{Style: epicharts.DefaultPieStyle()}
		data = []PieData{
			{Title: "绿化", Rate: 50},
			{Title: "水文", Rate: 25},
			{Title: "混凝土", Rate: 25},
		}
	)
	if err := s.DrawPie(doc, "pie", data, "Wuchang"); err != nil {
		t.Fatal(err)
	}
	svg, _ := dom.GetElementByID(doc, "#pie")
	if v, _ := dom.GetAttr(svg.FirstChild, "transform"); v != "translate(150, 120)" {
		t.Errorf("pie transform = %s", v)
	}

	paths := dom.QueryAll(svg, "path")
	if len(paths) != len(data) {
		t.Fatalf("arcs = %d, want %d", len(paths), len(data))
	}
	if d, _ := dom.GetAttr(paths[0], "d"); d != "M0,-50A50,50,0,1,1,0,50L0,0Z" {
		t.Errorf("first arc = %s", d)
	}
	fills := []string{"#32CD32", "#5b9ae7", "#778899"}
	for i, p := range paths {
		if v, _ := dom.Style(p, "fill"); v != fills[i] {
			t.Errorf("arc %d fill = %s, want %s", i, v, fills[i])
		}
	}

	lines := dom.QueryAll(svg, "polyline")
	if len(lines) != len(data) {
		t.Fatalf("leader lines = %d, want %d", len(lines), len(data))
	}
	if v, _ := dom.GetAttr(lines[0], "points"); v != "25,0 65,0 150,0" {
		t.Errorf("first leader line = %s", v)
	}

	texts := dom.QueryAll(svg, "text")
	if len(texts) != len(data)+1 {
		t.Fatalf("texts = %d, want %d", len(texts), len(data)+1)
	}
	label := texts[0]
	if got := dom.Text(label); got != "绿化 (50.00%)" {
		t.Errorf("label = %s", got)
	}
	if x, _ := dom.GetAttr(label, "x"); x != "70" {
		t.Errorf("label x = %s, want 70", x)
	}
	if y, _ := dom.GetAttr(label, "y"); y != "-5" {
		t.Errorf("label y = %s, want -5", y)
	}
	title := texts[len(texts)-1]
	if got := dom.Text(title); got != "Wuchang" {
		t.Errorf("title = %s", got)
	}
	if y, _ := dom.GetAttr(title, "y"); y != "-90" {
		t.Errorf("title y = %s, want -90", y)
	}

	if err := s.ClearPie(doc, "pie"); err != nil {
		t.Fatal(err)
	}
	for _, tag := range []string{"path", "polyline", "text"} {
		if n := len(dom.QueryAll(svg, tag)); n != 0 {
			t.Errorf("%d %s left after clear", n, tag)
		}
	}
	if n := len(dom.QueryAll(svg, "g")); n != 1+2*len(data) {
		t.Errorf("groups = %d, want %d", n, 1+2*len(data))
	}
}

func TestDrawPieLeftLabel(t *testing.T) {
	var (
		doc  = parsePage(t, piePage)
		s    PieStore
		data = []PieData{
			{Title: "混凝土", Rate: 25},
			{Title: "水文", Rate: 75},
		}
	)
	if err := s.DrawPie(doc, "pie", data, ""); err != nil {
		t.Fatal(err)
	}
	svg, _ := dom.GetElementByID(doc, "pie")
	texts := dom.QueryAll(svg, "text")
	// 混凝土 spans the last quarter, its label goes on the left
	x, _ := dom.GetAttr(texts[0], "x")
	if x != "-120.962" {
		t.Errorf("label x = %s, want -120.962", x)
	}
}

func TestDrawPieErrors(t *testing.T) {
	doc := parsePage(t, piePage)
	var s PieStore
	if err := s.DrawPie(doc, "pie", nil, ""); !errors.Is(err, epicharts.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if err := s.DrawPie(doc, "nowhere", []PieData{{Title: "x", Rate: 1}}, ""); !errors.Is(err, dom.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.ClearPie(doc, "nowhere"); !errors.Is(err, dom.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPieLabel(t *testing.T) {
	tests := []struct {
		in   PieData
		want string
	}{
		{in: PieData{Title: "水文", Rate: 21.08}, want: "水文 (21.08%)"},
		{in: PieData{Title: "绿化", Rate: 35.625}, want: "绿化 (35.63%)"},
		{in: PieData{Title: "混凝土", Rate: 43}, want: "混凝土 (43.00%)"},
		{in: PieData{Title: "绿化", Rate: 0.015}, want: "绿化 (0.01%)"},
		{in: PieData{Title: "绿化", Rate: 1.005}, want: "绿化 (1.00%)"},
		{in: PieData{Title: "绿化", Rate: 0.125}, want: "绿化 (0.13%)"},
		{in: PieData{Title: "绿化", Rate: -0.125}, want: "绿化 (-0.13%)"},
	}
	for _, tt := range tests {
		if got := PieLabel(tt.in); got != tt.want {
			t.Errorf("PieLabel(%+v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
