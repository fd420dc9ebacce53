package epicharts

import (
	"math"
	"sort"
	"strings"

	"github.com/midbel/epicharts/dom"
)

const (
	fullcircle = 2 * math.Pi
	halfcircle = math.Pi
	epsilon    = 1e-12
)

// LinePath returns the path data of a polyline through every value, the x
// coordinate being the index of the value. NaN values are skipped and break
// the line.
func LinePath(x, y Scaler, data []float64) string {
	var (
		buf  strings.Builder
		move = true
	)
	for i, v := range data {
		if math.IsNaN(v) {
			move = true
			continue
		}
		if move {
			buf.WriteByte('M')
			move = false
		} else {
			buf.WriteByte('L')
		}
		buf.WriteString(NewPos(x.Scale(float64(i)), y.Scale(v)).String())
	}
	return buf.String()
}

// Slice is one arc of a pie. Angles are in radians, clockwise from 12
// o'clock.
type Slice struct {
	Index      int
	Value      float64
	StartAngle float64
	EndAngle   float64
}

func (s Slice) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// PieLayout computes the arc of every value. Angles are handed out from the
// largest value to the smallest, ties keeping their input order, but the
// returned slices follow the input order. Values that are not positive get an
// empty arc.
func PieLayout(values []float64) []Slice {
	var (
		list  = make([]Slice, len(values))
		index = make([]int, len(values))
		sum   float64
	)
	for i, v := range values {
		index[i] = i
		list[i] = Slice{Index: i, Value: v}
		if v > 0 {
			sum += v
		}
	}
	sort.SliceStable(index, func(i, j int) bool {
		return values[index[i]] > values[index[j]]
	})
	var (
		k     float64
		angle float64
	)
	if sum > 0 {
		k = fullcircle / sum
	}
	for _, i := range index {
		var span float64
		if v := values[i]; v > 0 {
			span = v * k
		}
		list[i].StartAngle = angle
		list[i].EndAngle = angle + span
		angle += span
	}
	return list
}

// ArcPath returns the path data of a slice of a pie without hole.
func ArcPath(s Slice, radius float64) string {
	var (
		a0   = s.StartAngle - halfcircle/2
		a1   = s.EndAngle - halfcircle/2
		span = math.Abs(s.Span())
		pos0 = getPosFromAngle(a0, radius)
		r    = dom.Ftoa(radius)
		buf  strings.Builder
	)
	if radius <= epsilon {
		return "M0,0Z"
	}
	buf.WriteString("M" + pos0.String())
	switch {
	case span > fullcircle-1e-6:
		half := getPosFromAngle(a0+halfcircle, radius)
		buf.WriteString("A" + r + "," + r + ",0,1,1," + half.String())
		buf.WriteString("A" + r + "," + r + ",0,1,1," + pos0.String())
	case span > epsilon:
		large := "0"
		if span >= halfcircle-1e-9 {
			large = "1"
		}
		buf.WriteString("A" + r + "," + r + ",0," + large + ",1," + getPosFromAngle(a1, radius).String())
		buf.WriteString("L0,0")
	default:
		buf.WriteString("L0,0")
	}
	buf.WriteString("Z")
	return buf.String()
}

// Centroid returns the middle of the slice, halfway between inner and outer
// radius.
func Centroid(s Slice, inner, outer float64) Pos {
	var (
		r = (inner + outer) / 2
		a = (s.StartAngle+s.EndAngle)/2 - halfcircle/2
	)
	return getPosFromAngle(a, r)
}

// LeaderPoint projects a centroid to distance from the center of the pie,
// where the leader line of a label bends. A centroid at the center points up.
func LeaderPoint(c Pos, distance float64) Pos {
	h := math.Hypot(c.X, c.Y)
	if h == 0 {
		return NewPos(0, -distance)
	}
	var pos Pos
	if c.Y <= 0 {
		var (
			cos = math.Abs(c.X / h)
			sin = math.Abs(c.Y / h)
		)
		pos.X = cos * distance
		if c.X < 0 {
			pos.X = -pos.X
		}
		pos.Y = -sin * distance
	} else {
		var (
			cos = math.Abs(c.Y / h)
			sin = math.Abs(c.X / h)
		)
		pos.X = sin * distance
		if c.X <= 0 {
			pos.X = -pos.X
		}
		pos.Y = cos * distance
	}
	return pos
}

// LeaderPoints returns the points of the label leader line of a slice:
// centroid, bend, and the end of the horizontal extension.
func LeaderPoints(c Pos, distance, extension float64) []Pos {
	var (
		bend = LeaderPoint(c, distance)
		end  = bend
	)
	if bend.X > 0 {
		end.X += extension
	} else {
		end.X -= extension
	}
	return []Pos{c, bend, end}
}

func Points(list []Pos) string {
	parts := make([]string, len(list))
	for i := range list {
		parts[i] = list[i].String()
	}
	return strings.Join(parts, " ")
}

func getPosFromAngle(angle, radius float64) Pos {
	var (
		x1 = radius * math.Cos(angle)
		y1 = radius * math.Sin(angle)
	)
	return NewPos(x1, y1)
}
