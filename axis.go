package epicharts

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/midbel/epicharts/dom"
	"golang.org/x/net/html"
)

const (
	FontSize    = 10.0
	TickSize    = 6.0
	TickPadding = 3.0
)

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

type NumberAxis struct {
	Orientation
	Ticks  int
	Scaler Scaler
	Domain []float64
	Format func(float64) string

	WithInnerTicks bool
	WithLabelTicks bool
	// WithOuterTicks draws grid lines across the drawing area.
	WithOuterTicks bool
	GridOpacity    float64
}

// Render returns a group holding the domain line and the ticks of the axis.
// size is the extent of the drawing area perpendicular to the axis; it is
// only used by grid lines.
func (a NumberAxis) Render(size float64) *html.Node {
	var (
		data   = a.Domain
		format = a.Format
		length = a.Scaler.Max() - a.Scaler.Min()
	)
	if len(data) == 0 {
		data = a.Scaler.Ticks(a.Ticks)
	}
	if format == nil {
		format = TickFormat(a.Scaler.Step(a.Ticks))
	}
	g := dom.CreateElement("g",
		dom.Attr("class", "axis "+a.className()),
		dom.Attr("fill", "none"),
		dom.Attr("font-size", dom.Ftoa(FontSize)),
		dom.Attr("font-family", "sans-serif"),
		dom.Attr("text-anchor", a.anchor()),
	)
	g.AppendChild(domainLine(a.Orientation, a.Scaler.Min(), length))
	for _, f := range data {
		var (
			pos = a.Scaler.Scale(f)
			tx  = dom.Ftoa(pos) + ",0"
		)
		if a.Vertical() {
			tx = "0," + dom.Ftoa(pos)
		}
		grp := dom.Append(g, "g",
			dom.Attr("class", "tick"),
			dom.Attr("opacity", "1"),
			dom.Attr("transform", "translate("+tx+")"),
		)
		if a.WithInnerTicks {
			grp.AppendChild(lineTick(a.Orientation, TickSize, 1))
		}
		if a.WithOuterTicks {
			op := a.GridOpacity
			if op <= 0 {
				op = 0.1
			}
			grid := lineTick(a.Orientation, -size, op)
			dom.SetAttr(grid, "class", "grid")
			grp.AppendChild(grid)
		}
		if a.WithLabelTicks {
			grp.AppendChild(tickText(a.Orientation, format(f)))
		}
	}
	return g
}

func (a NumberAxis) className() string {
	switch a.Orientation {
	case OrientTop:
		return "axis-top"
	case OrientRight:
		return "axis-right"
	case OrientLeft:
		return "axis-left"
	default:
		return "axis-bottom"
	}
}

func (a NumberAxis) anchor() string {
	switch a.Orientation {
	case OrientLeft:
		return "end"
	case OrientRight:
		return "start"
	default:
		return "middle"
	}
}

// TickFormat returns a formatter using as many decimals as step requires and
// grouping thousands.
func TickFormat(step float64) func(float64) string {
	prec := 0
	if step > 0 && step < 1 {
		prec = int(math.Max(0, -math.Floor(math.Log10(step))))
	}
	return func(f float64) string {
		return groupThousands(strconv.FormatFloat(f, 'f', prec, 64))
	}
}

func groupThousands(str string) string {
	var (
		neg  = strings.HasPrefix(str, "-")
		frac string
	)
	str = strings.TrimPrefix(str, "-")
	if x := strings.IndexByte(str, '.'); x >= 0 {
		str, frac = str[:x], str[x:]
	}
	var buf strings.Builder
	if neg {
		buf.WriteByte('-')
	}
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			buf.WriteByte(',')
		}
		buf.WriteRune(c)
	}
	buf.WriteString(frac)
	return buf.String()
}

func domainLine(orient Orientation, offset, length float64) *html.Node {
	var (
		outer = TickSize
		end   = offset + length
		d     string
	)
	if orient == OrientLeft || orient == OrientTop {
		outer = -outer
	}
	if orient.Vertical() {
		d = fmt.Sprintf("M%s,%sH0.5V%sH%s", dom.Ftoa(outer), dom.Ftoa(offset+0.5), dom.Ftoa(end+0.5), dom.Ftoa(outer))
	} else {
		d = fmt.Sprintf("M%s,%sV0.5H%sV%s", dom.Ftoa(offset+0.5), dom.Ftoa(outer), dom.Ftoa(end+0.5), dom.Ftoa(outer))
	}
	return dom.CreateElement("path",
		dom.Attr("class", "domain"),
		dom.Attr("stroke", "currentColor"),
		dom.Attr("d", d),
	)
}

func lineTick(orient Orientation, size, opacity float64) *html.Node {
	if orient == OrientLeft || orient == OrientTop {
		size = -size
	}
	key := "y2"
	if orient.Vertical() {
		key = "x2"
	}
	el := dom.CreateElement("line",
		dom.Attr("stroke", "currentColor"),
		dom.Attr(key, dom.Ftoa(size)),
	)
	if opacity < 1 {
		dom.SetAttr(el, "stroke-opacity", dom.Ftoa(opacity))
	}
	return el
}

func tickText(orient Orientation, str string) *html.Node {
	var (
		offset = TickSize + TickPadding
		key    = "y"
		dy     = "0.71em"
	)
	switch orient {
	case OrientTop:
		offset, dy = -offset, "0em"
	case OrientLeft:
		offset, key, dy = -offset, "x", "0.32em"
	case OrientRight:
		key, dy = "x", "0.32em"
	}
	el := dom.CreateElement("text",
		dom.Attr("fill", "currentColor"),
		dom.Attr(key, dom.Ftoa(offset)),
		dom.Attr("dy", dy),
	)
	dom.AppendText(el, str)
	return el
}
