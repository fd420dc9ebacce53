package store

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/midbel/epicharts"
	"github.com/midbel/epicharts/dom"
	"golang.org/x/net/html"
)

type PieStore struct {
	Data []PieGroup

	Style   epicharts.PieStyle
	Palette epicharts.Palette
}

func NewPieStore() (*PieStore, error) {
	return LoadPieStore("")
}

// LoadPieStore reads the pie groups from file, or from the embedded dataset
// when file is empty.
func LoadPieStore(file string) (*PieStore, error) {
	list, err := decodeFile(file, PieFile, DecodePie)
	if err != nil {
		return nil, err
	}
	s := PieStore{
		Data:    list,
		Style:   epicharts.DefaultPieStyle(),
		Palette: epicharts.Category10,
	}
	return &s, nil
}

// DrawPie draws one arc per item of data into the svg element svgID. Every
// arc gets a leader line ending on a label with its title and rate, and the
// chart title is written above the pie.
func (s *PieStore) DrawPie(doc *html.Node, svgID string, data []PieData, title string) error {
	if len(data) == 0 {
		return epicharts.ErrEmptyData
	}
	svg, err := dom.GetElementByID(doc, svgID)
	if err != nil {
		return err
	}
	var (
		style  = s.pieStyle()
		colors = s.colors(data, style)
		values = make([]float64, len(data))
	)
	for i := range data {
		values[i] = data[i].Rate
	}
	arcs := epicharts.PieLayout(values)

	g := dom.Append(svg, "g", dom.Attr("transform", epicharts.Translate(style.CenterX, style.CenterY)))
	for _, a := range arcs {
		arc := dom.Append(g, "g", dom.Attr("class", "arc"))
		dom.Append(arc, "path",
			dom.Attr("d", epicharts.ArcPath(a, style.Radius)),
			dom.Attr("style", "fill: "+colors[data[a.Index].Title]),
		)
	}
	for _, a := range arcs {
		var (
			item   = data[a.Index]
			color  = colors[item.Title]
			points = epicharts.LeaderPoints(epicharts.Centroid(a, 0, style.Radius), style.Radius+style.Distance, style.Extension)
			grp    = dom.Append(g, "g", dom.Attr("class", "path-group"))
		)
		dom.Append(grp, "polyline",
			dom.Attr("points", epicharts.Points(points)),
			dom.Attr("stroke", color),
			dom.Attr("fill", "none"),
		)
		grp.AppendChild(pieLabel(points[1], item, color))
	}

	txt := dom.Append(g, "text",
		dom.Attr("x", "0"),
		dom.Attr("y", dom.Ftoa(-style.Radius-40)),
		dom.Attr("text-anchor", "middle"),
		dom.Attr("style", "fill: "+style.TitleFill+"; font-size: 16px"),
	)
	dom.AppendText(txt, title)
	return nil
}

// ClearPie removes the arcs, leader lines and texts of the svg element svgID.
// The groups holding them are left in place.
func (s *PieStore) ClearPie(doc *html.Node, svgID string) error {
	svg, err := dom.GetElementByID(doc, svgID)
	if err != nil {
		return err
	}
	dom.RemoveAll(svg, "path", "polyline", "text")
	return nil
}

// pieLabel places the label on the left or the right of the bend of the
// leader line depending on the side of the pie.
func pieLabel(bend epicharts.Pos, item PieData, color string) *html.Node {
	offset := -75.0
	if bend.X > 0 {
		offset = 5
	}
	el := dom.CreateElement("text",
		dom.Attr("x", dom.Ftoa(bend.X+offset)),
		dom.Attr("y", dom.Ftoa(bend.Y-10+5)),
		dom.Attr("fill", color),
		dom.Attr("style", "font-size: 14px"),
	)
	dom.AppendText(el, PieLabel(item))
	return el
}

// PieLabel formats an item as "title (rate%)" with two decimals.
func PieLabel(item PieData) string {
	return fmt.Sprintf("%s (%s%%)", item.Title, toFixed(item.Rate, 2))
}

// toFixed formats f with prec decimals. strconv rounds the exact binary
// value but breaks exact ties to even, those are rounded away from zero
// instead.
func toFixed(f float64, prec int) string {
	str := strconv.FormatFloat(f, 'f', prec, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return str
	}
	var (
		pow = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(prec)), nil)
		val = new(big.Rat).SetFloat64(math.Abs(f))
	)
	val.Mul(val, new(big.Rat).SetInt(pow))
	var (
		n    = new(big.Int).Quo(val.Num(), val.Denom())
		rest = new(big.Rat).Sub(val, new(big.Rat).SetInt(n))
	)
	if rest.Cmp(big.NewRat(1, 2)) != 0 {
		return str
	}
	n.Add(n, big.NewInt(1))
	str = new(big.Rat).SetFrac(n, pow).FloatString(prec)
	if f < 0 {
		str = "-" + str
	}
	return str
}

func (s *PieStore) colors(data []PieData, style epicharts.PieStyle) map[string]string {
	titles := make([]string, len(data))
	for i := range data {
		titles[i] = data[i].Title
	}
	palette := s.Palette
	if len(palette) == 0 {
		palette = epicharts.Category10
	}
	return palette.Colors(titles, style.Colors)
}

func (s *PieStore) pieStyle() epicharts.PieStyle {
	var (
		style = s.Style
		def   = epicharts.DefaultPieStyle()
	)
	if style.Radius <= 0 {
		style.Radius = def.Radius
	}
	if style.Distance == 0 {
		style.Distance = def.Distance
	}
	if style.Extension == 0 {
		style.Extension = def.Extension
	}
	if style.CenterX == 0 && style.CenterY == 0 {
		style.CenterX, style.CenterY = def.CenterX, def.CenterY
	}
	if style.Colors == nil {
		style.Colors = def.Colors
	}
	if style.TitleFill == "" {
		style.TitleFill = def.TitleFill
	}
	return style
}
