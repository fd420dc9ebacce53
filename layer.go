package epicharts

import (
	"github.com/midbel/epicharts/dom"
	"golang.org/x/net/html"
)

const (
	LayerID     = "svg"
	LayerRectID = "rect"
	LayerIconID = "img"

	DefaultLayerIcon = "/image/ZoomOut.svg"
)

// NewLayer returns the overlay drawn above the charts when one of them is
// zoomed: a dark backdrop and a zoom-out icon in the top right corner, both
// hidden until ShowLayer is called.
func NewLayer(icon string) *html.Node {
	if icon == "" {
		icon = DefaultLayerIcon
	}
	el := dom.CreateElement("svg",
		dom.Attr("width", "100%"),
		dom.Attr("height", "100%"),
		dom.Attr("id", LayerID),
	)
	dom.Append(el, "rect",
		dom.Attr("width", "100%"),
		dom.Attr("height", "100%"),
		dom.Attr("fill", "#2b2b2b"),
		dom.Attr("visibility", "hidden"),
		dom.Attr("id", LayerRectID),
	)
	dom.Append(el, "image",
		dom.Attr("x", "96%"),
		dom.Attr("y", "3"),
		dom.Attr("width", "25"),
		dom.Attr("height", "25"),
		dom.Attr("href", icon),
		dom.Attr("visibility", "hidden"),
		dom.Attr("id", LayerIconID),
	)
	return el
}

func ShowLayer(layer *html.Node) error {
	return setLayerVisibility(layer, "visible")
}

func HideLayer(layer *html.Node) error {
	return setLayerVisibility(layer, "hidden")
}

func setLayerVisibility(layer *html.Node, value string) error {
	for _, id := range []string{LayerRectID, LayerIconID} {
		el, err := dom.GetElementByID(layer, id)
		if err != nil {
			return err
		}
		dom.SetAttr(el, "visibility", value)
	}
	return nil
}
