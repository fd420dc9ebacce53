package store

import (
	"fmt"
	"math"

	"github.com/midbel/epicharts"
	"github.com/midbel/epicharts/dom"
	"golang.org/x/net/html"
)

const (
	TooltipClass = "tooltip"
	markerCSS    = "circle.marker:hover { opacity: 1 !important; }"
)

type LineStore struct {
	InfectionList  []InfectionSeries
	TotalInfection []float64

	Margin epicharts.Margin
	Style  epicharts.LineStyle
}

// NewLineStore returns a store loaded with the embedded datasets.
func NewLineStore() (*LineStore, error) {
	return LoadLineStore("", "")
}

// LoadLineStore reads the infection series and the total infections from the
// given files. An empty path selects the embedded dataset.
func LoadLineStore(infections, total string) (*LineStore, error) {
	list, err := decodeFile(infections, InfectionFile, DecodeInfections)
	if err != nil {
		return nil, err
	}
	sum, err := decodeFile(total, TotalFile, DecodeTotal)
	if err != nil {
		return nil, err
	}
	s := LineStore{
		InfectionList:  list,
		TotalInfection: sum,
		Margin:         epicharts.DefaultMargin,
		Style:          epicharts.DefaultLineStyle(),
	}
	return &s, nil
}

// DrawLineChart draws data as a line into the svg element svgID found in doc.
// The x axis gives the index of the values, the y axis goes from 0 to the
// greatest value. Every point gets an invisible marker showing a tooltip on
// hover.
func (s *LineStore) DrawLineChart(doc *html.Node, svgID string, data []float64, title string) error {
	if len(data) == 0 {
		return epicharts.ErrEmptyData
	}
	svg, err := dom.GetElementByID(doc, svgID)
	if err != nil {
		return err
	}
	margin := s.Margin
	if margin.IsZero() {
		margin = epicharts.DefaultMargin
	}
	frame, err := epicharts.MeasureFrame(svg, margin)
	if err != nil {
		return fmt.Errorf("%s: %w", svgID, err)
	}
	var (
		style  = s.lineStyle()
		xscale = epicharts.NumberScaler(
			epicharts.NumberDomain(0, float64(len(data)-1)),
			epicharts.NewRange(0, frame.InnerWidth),
		)
		yscale = epicharts.NumberScaler(
			epicharts.NumberDomain(0, maxValue(data)),
			epicharts.NewRange(frame.InnerHeight, 0),
		)
	)

	g := dom.Append(svg, "g", dom.Attr("transform", frame.Translate()))

	bottom := epicharts.NumberAxis{
		Orientation:    epicharts.OrientBottom,
		Ticks:          style.Ticks,
		Scaler:         xscale,
		WithInnerTicks: true,
		WithLabelTicks: true,
	}
	el := bottom.Render(frame.InnerHeight)
	dom.SetAttr(el, "transform", epicharts.Translate(0, frame.InnerHeight))
	g.AppendChild(el)

	left := epicharts.NumberAxis{
		Orientation:    epicharts.OrientLeft,
		Ticks:          style.Ticks,
		Scaler:         yscale,
		WithInnerTicks: true,
		WithLabelTicks: true,
		WithOuterTicks: style.Grid,
		GridOpacity:    style.GridOpacity,
	}
	g.AppendChild(left.Render(frame.InnerWidth))

	txt := dom.Append(g, "text",
		dom.Attr("font-size", "1em"),
		dom.Attr("transform", epicharts.Translate(frame.InnerWidth/2, frame.InnerHeight+40)),
		dom.Attr("text-anchor", "middle"),
	)
	dom.AppendText(txt, title)

	dom.Append(g, "path",
		dom.Attr("class", "line"),
		dom.Attr("d", epicharts.LinePath(xscale, yscale, data)),
		dom.Attr("fill", "none"),
		dom.Attr("stroke-width", dom.Ftoa(style.StrokeWidth)),
		dom.Attr("stroke", style.Stroke),
	)

	if body := dom.Body(doc); body != nil {
		EnsureTooltip(body)
	}
	dom.AppendText(dom.Append(g, "style"), markerCSS)
	for i, v := range data {
		if math.IsNaN(v) {
			continue
		}
		var (
			pos = epicharts.NewPos(xscale.Scale(float64(i)), yscale.Scale(v))
			tip = epicharts.TooltipText(style.Tooltip, i, v)
		)
		g.AppendChild(epicharts.Marker(pos, style.MarkerRadius, i, v, tip))
	}
	return nil
}

// ClearLineChart removes everything drawn into the svg element svgID.
func (s *LineStore) ClearLineChart(doc *html.Node, svgID string) error {
	svg, err := dom.GetElementByID(doc, svgID)
	if err != nil {
		return err
	}
	dom.RemoveChildren(svg)
	return nil
}

func (s *LineStore) lineStyle() epicharts.LineStyle {
	var (
		style = s.Style
		def   = epicharts.DefaultLineStyle()
	)
	if style.Stroke == "" {
		style.Stroke = def.Stroke
	}
	if style.StrokeWidth <= 0 {
		style.StrokeWidth = def.StrokeWidth
	}
	if style.MarkerRadius <= 0 {
		style.MarkerRadius = def.MarkerRadius
	}
	if style.Ticks <= 0 {
		style.Ticks = def.Ticks
	}
	if style.Tooltip == "" {
		style.Tooltip = def.Tooltip
	}
	return style
}

// EnsureTooltip adds the tooltip box shared by every line chart of a page.
func EnsureTooltip(body *html.Node) *html.Node {
	if list := dom.QueryClass(body, TooltipClass); len(list) > 0 {
		return list[0]
	}
	div := dom.CreateHTMLElement("div", dom.Attr("class", TooltipClass))
	for _, prop := range [][2]string{
		{"position", "absolute"},
		{"background-color", "white"},
		{"padding", "5px"},
		{"border", "1px solid #ccc"},
		{"border-radius", "5px"},
		{"opacity", "0"},
	} {
		dom.SetStyle(div, prop[0], prop[1])
	}
	body.AppendChild(div)
	return div
}

// maxValue ignores NaN and returns 0 when nothing else is left.
func maxValue(data []float64) float64 {
	var (
		max  float64
		seen bool
	)
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if !seen || v > max {
			max = v
			seen = true
		}
	}
	return max
}
