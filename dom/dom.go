// Package dom is a small retained-mode scene graph for SVG documents.
//
// Nodes are plain *html.Node values so that a chart can be drawn either into a
// standalone svg element or into an svg embedded in a parsed HTML page. Draw
// operations append nodes, clear operations detach them.
package dom

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	NamespaceSVG = "svg"
	xmlnsSVG     = "http://www.w3.org/2000/svg"
)

var (
	ErrNotFound     = errors.New("element not found")
	ErrUnmeasurable = errors.New("element size can not be measured")
)

const emptyPage = `<!DOCTYPE html><html><head><meta charset="utf-8"><title></title></head><body></body></html>`

// NewPage returns an empty HTML document with the given title.
func NewPage(title string) *html.Node {
	doc, err := html.Parse(strings.NewReader(emptyPage))
	if err != nil {
		panic(err)
	}
	if t := first(doc, atom.Title.String()); t != nil {
		AppendText(t, title)
	}
	return doc
}

// Parse reads an HTML document. Inline svg elements keep their svg namespace.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// NewSVG creates a standalone svg element sized width x height.
func NewSVG(id string, width, height float64) *html.Node {
	el := CreateElement("svg",
		Attr("xmlns", xmlnsSVG),
		Attr("width", Ftoa(width)),
		Attr("height", Ftoa(height)),
	)
	if id = trimID(id); id != "" {
		SetAttr(el, "id", id)
	}
	return el
}

// Render writes the node and its subtree.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// Attr builds an attribute; it reads better than html.Attribute literals at
// call sites that set many of them.
func Attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

// CreateElement returns a detached svg element.
func CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		DataAtom:  atom.Lookup([]byte(tag)),
		Namespace: NamespaceSVG,
	}
	n.Attr = append(n.Attr, attrs...)
	return n
}

// CreateHTMLElement returns a detached element in the HTML namespace.
func CreateHTMLElement(tag string, attrs ...html.Attribute) *html.Node {
	n := CreateElement(tag, attrs...)
	n.Namespace = ""
	return n
}

// Append creates an svg element and appends it to parent.
func Append(parent *html.Node, tag string, attrs ...html.Attribute) *html.Node {
	el := CreateElement(tag, attrs...)
	parent.AppendChild(el)
	return el
}

func AppendText(parent *html.Node, str string) *html.Node {
	txt := &html.Node{
		Type: html.TextNode,
		Data: str,
	}
	parent.AppendChild(txt)
	return txt
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var buf strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
		return true
	})
	return buf.String()
}

func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key && n.Attr[i].Namespace == "" {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, Attr(key, value))
}

// Style returns the value of one property of the inline style attribute.
func Style(n *html.Node, prop string) (string, bool) {
	str, ok := GetAttr(n, "style")
	if !ok {
		return "", false
	}
	v, ok := parseStyle(str)[prop]
	return v, ok
}

// SetStyle sets one property of the inline style attribute, keeping the
// others.
func SetStyle(n *html.Node, prop, value string) {
	str, _ := GetAttr(n, "style")
	set := parseStyle(str)
	set[strings.TrimSpace(prop)] = value

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, set[k]))
	}
	SetAttr(n, "style", strings.Join(parts, "; "))
}

func parseStyle(str string) map[string]string {
	set := make(map[string]string)
	for _, decl := range strings.Split(str, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		set[strings.TrimSpace(prop)] = strings.TrimSpace(value)
	}
	return set
}

// GetElementByID searches the subtree of root. A leading '#' in id is
// ignored.
func GetElementByID(root *html.Node, id string) (*html.Node, error) {
	id = trimID(id)
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type != html.ElementNode {
			return true
		}
		if v, ok := GetAttr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("#%s: %w", id, ErrNotFound)
	}
	return found, nil
}

// QueryAll returns every descendant element of n with the given tag, in
// document order.
func QueryAll(n *html.Node, tag string) []*html.Node {
	var list []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(el *html.Node) bool {
			if el.Type == html.ElementNode && el.Data == tag {
				list = append(list, el)
			}
			return true
		})
	}
	return list
}

// QueryClass returns every descendant element of n carrying class.
func QueryClass(n *html.Node, class string) []*html.Node {
	var list []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(el *html.Node) bool {
			if el.Type == html.ElementNode && HasClass(el, class) {
				list = append(list, el)
			}
			return true
		})
	}
	return list
}

func HasClass(n *html.Node, class string) bool {
	str, _ := GetAttr(n, "class")
	for _, c := range strings.Fields(str) {
		if c == class {
			return true
		}
	}
	return false
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// RemoveAll detaches every descendant of n whose tag is one of tags and
// returns how many were removed.
func RemoveAll(n *html.Node, tags ...string) int {
	var count int
	for _, t := range tags {
		for _, el := range QueryAll(n, t) {
			if el.Parent == nil {
				continue
			}
			el.Parent.RemoveChild(el)
			count++
		}
	}
	return count
}

// Body returns the body element of an HTML document, nil for a standalone
// svg.
func Body(doc *html.Node) *html.Node {
	return first(doc, atom.Body.String())
}

// Measure returns the size of a container the way a browser would report
// its computed style for fixed sizes: the inline style wins over the width
// and height attributes. Relative sizes can not be resolved.
func Measure(n *html.Node) (float64, float64, error) {
	w, err := measure(n, "width")
	if err != nil {
		return 0, 0, err
	}
	h, err := measure(n, "height")
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func measure(n *html.Node, prop string) (float64, error) {
	str, ok := Style(n, prop)
	if !ok {
		str, ok = GetAttr(n, prop)
	}
	if !ok {
		return 0, fmt.Errorf("%s missing: %w", prop, ErrUnmeasurable)
	}
	str = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(str), "px"))
	v, err := strconv.ParseFloat(str, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s %q: %w", prop, str, ErrUnmeasurable)
	}
	return v, nil
}

// Ftoa formats coordinates the way they end up in path data: no trailing
// zeros, at most 3 decimals.
func Ftoa(f float64) string {
	f = float64(int64(f*1000+sign(f)*0.5)) / 1000
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

func trimID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), "#")
}

func first(n *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if c.Type == html.ElementNode && c.Data == tag {
			found = c
			return false
		}
		return true
	})
	return found
}

func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
