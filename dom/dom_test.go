package dom

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<body>
<div id="app">
<svg id="line" style="width: 600px; height: 400px"></svg>
<svg id="pie" width="300" height="240"><g><path d="M0,0"></path><text>x</text></g></svg>
<svg id="relative" width="100%" height="100%"></svg>
</div>
</body>
</html>`

func TestGetElementByID(t *testing.T) {
	doc, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		id   string
		want bool
	}{
		{id: "line", want: true},
		{id: "#pie", want: true},
		{id: "missing", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el, err := GetElementByID(doc, tt.id)
			if !tt.want {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if el.Data != "svg" {
				t.Errorf("element = %s, want svg", el.Data)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	doc, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		id     string
		width  float64
		height float64
		err    bool
	}{
		{id: "line", width: 600, height: 400},
		{id: "pie", width: 300, height: 240},
		{id: "relative", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			el, err := GetElementByID(doc, tt.id)
			if err != nil {
				t.Fatal(err)
			}
			w, h, err := Measure(el)
			if tt.err {
				if !errors.Is(err, ErrUnmeasurable) {
					t.Fatalf("expected ErrUnmeasurable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if w != tt.width || h != tt.height {
				t.Errorf("size = %vx%v, want %vx%v", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestRemoveAll(t *testing.T) {
	doc, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatal(err)
	}
	pie, _ := GetElementByID(doc, "pie")
	if n := RemoveAll(pie, "path", "text"); n != 2 {
		t.Errorf("removed %d elements, want 2", n)
	}
	if n := len(QueryAll(pie, "g")); n != 1 {
		t.Errorf("groups left = %d, want 1", n)
	}
	RemoveChildren(pie)
	if pie.FirstChild != nil {
		t.Errorf("svg still has children")
	}
}

func TestSetStyle(t *testing.T) {
	el := CreateElement("circle")
	SetStyle(el, "opacity", "0")
	SetStyle(el, "fill", "red")
	SetStyle(el, "opacity", "1")

	if v, _ := Style(el, "opacity"); v != "1" {
		t.Errorf("opacity = %q, want 1", v)
	}
	if v, _ := GetAttr(el, "style"); v != "fill: red; opacity: 1" {
		t.Errorf("style = %q", v)
	}
}

func TestRenderSVG(t *testing.T) {
	el := NewSVG("#chart", 200, 100)
	g := Append(el, "g", Attr("transform", "translate(10,20)"))
	AppendText(Append(g, "text"), "a < b")

	var buf bytes.Buffer
	if err := Render(&buf, el); err != nil {
		t.Fatal(err)
	}
	str := buf.String()
	for _, want := range []string{`id="chart"`, `width="200"`, `<g transform="translate(10,20)">`, `a &lt; b`} {
		if !strings.Contains(str, want) {
			t.Errorf("%s not found in %s", want, str)
		}
	}
}

func TestFtoa(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 12, want: "12"},
		{in: 1.23456, want: "1.235"},
		{in: -0.0001, want: "0"},
		{in: -4.5, want: "-4.5"},
	}
	for _, tt := range tests {
		if got := Ftoa(tt.in); got != tt.want {
			t.Errorf("Ftoa(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNewPage(t *testing.T) {
	doc := NewPage("infections")
	if Body(doc) == nil {
		t.Fatal("page has no body")
	}
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<title>infections</title>") {
		t.Errorf("title missing: %s", buf.String())
	}
}
