package epicharts

import (
	"golang.org/x/exp/slices"
)

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

// AreaColors are the fill colors of the land cover categories found in the
// pie datasets.
var AreaColors = map[string]string{
	"绿化":  "#32CD32",
	"水文":  "#5b9ae7",
	"混凝土": "#778899",
}

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// Pick returns the first color of the palette that is not similar to any of
// the used ones. When every color is too close, it cycles on the number of
// used colors.
func (p Palette) Pick(used []string) string {
	if len(p) == 0 {
		return ""
	}
	for _, c := range p {
		if slices.ContainsFunc(used, func(u string) bool {
			ok, err := Similar(c, u)
			return err == nil && ok
		}) {
			continue
		}
		return c
	}
	return p[len(used)%len(p)]
}

// Colors resolves the fill color of every title: known titles take their
// color from known, the others a palette color distinct from those already
// assigned.
func (p Palette) Colors(titles []string, known map[string]string) map[string]string {
	var (
		set  = make(map[string]string)
		used []string
	)
	for _, t := range titles {
		if c, ok := known[t]; ok {
			set[t] = c
			used = append(used, c)
		}
	}
	for _, t := range titles {
		if _, ok := set[t]; ok {
			continue
		}
		c := p.Pick(used)
		set[t] = c
		used = append(used, c)
	}
	return set
}
