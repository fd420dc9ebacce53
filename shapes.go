package epicharts

import (
	"strconv"
	"strings"

	"github.com/midbel/epicharts/dom"
	"golang.org/x/net/html"
)

var DefaultSize float64 = 6

type Pos struct {
	X float64
	Y float64
}

func NewPos(x, y float64) Pos {
	return Pos{
		X: x,
		Y: y,
	}
}

func (p Pos) String() string {
	return dom.Ftoa(p.X) + "," + dom.Ftoa(p.Y)
}

// Marker builds the invisible circle drawn over a point of a line. It becomes
// visible on hover and carries its tooltip both as data attributes and as a
// title element.
func Marker(pos Pos, radius float64, index int, value float64, tooltip string) *html.Node {
	if radius <= 0 {
		radius = DefaultSize / 2
	}
	el := dom.CreateElement("circle",
		dom.Attr("class", "marker"),
		dom.Attr("r", dom.Ftoa(radius)),
		dom.Attr("cx", dom.Ftoa(pos.X)),
		dom.Attr("cy", dom.Ftoa(pos.Y)),
		dom.Attr("data-index", strconv.Itoa(index)),
		dom.Attr("data-value", formatValue(value)),
	)
	dom.SetStyle(el, "opacity", "0")
	if tooltip != "" {
		dom.SetAttr(el, "data-tooltip", tooltip)
		dom.AppendText(dom.Append(el, "title"), tooltip)
	}
	return el
}

// TooltipText fills the tooltip template for the point at index.
func TooltipText(tpl string, index int, value float64) string {
	r := strings.NewReplacer(
		"{day}", strconv.Itoa(index+1),
		"{value}", formatValue(value),
	)
	return r.Replace(tpl)
}

func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
