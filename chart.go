// Package epicharts draws epidemiological line and pie charts into SVG scene
// graphs.
package epicharts

import (
	"errors"
	"fmt"
	"time"

	"github.com/midbel/epicharts/dom"
	"golang.org/x/net/html"
)

var (
	ErrTooSmall  = errors.New("container too small for margins")
	ErrEmptyData = errors.New("no data to draw")
)

type Margin struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

var DefaultMargin = Margin{
	Top:    30,
	Right:  20,
	Bottom: 50,
	Left:   60,
}

func (m Margin) Horizontal() float64 {
	return m.Left + m.Right
}

func (m Margin) Vertical() float64 {
	return m.Top + m.Bottom
}

func (m Margin) IsZero() bool {
	return m == Margin{}
}

// Frame is the drawing area left once the margins are taken from a
// container.
type Frame struct {
	Margin
	Width       float64
	Height      float64
	InnerWidth  float64
	InnerHeight float64
}

func AxisData(width, height float64, m Margin) (Frame, error) {
	f := Frame{
		Margin:      m,
		Width:       width,
		Height:      height,
		InnerWidth:  width - m.Horizontal(),
		InnerHeight: height - m.Vertical(),
	}
	if f.InnerWidth <= 0 || f.InnerHeight <= 0 {
		return f, fmt.Errorf("%vx%v: %w", width, height, ErrTooSmall)
	}
	return f, nil
}

// MeasureFrame measures el and computes its frame.
func MeasureFrame(el *html.Node, m Margin) (Frame, error) {
	w, h, err := dom.Measure(el)
	if err != nil {
		return Frame{}, err
	}
	return AxisData(w, h, m)
}

func (f Frame) Translate() string {
	return Translate(f.Left, f.Top)
}

func Translate(x, y float64) string {
	return fmt.Sprintf("translate(%s, %s)", dom.Ftoa(x), dom.Ftoa(y))
}

// DateBefore returns the calendar day that is days before now, formatted as
// YYYY-MM-DD.
func DateBefore(now time.Time, days int) string {
	return now.AddDate(0, 0, -days).Format("2006-01-02")
}
