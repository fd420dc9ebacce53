package epicharts

import (
	"math"
)

const DefaultTicks = 10

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

type Domain struct {
	Fst float64
	Lst float64
}

func NumberDomain(f, t float64) Domain {
	return Domain{
		Fst: f,
		Lst: t,
	}
}

func (d Domain) Diff(v float64) float64 {
	return v - d.Fst
}

func (d Domain) Extend() float64 {
	return d.Lst - d.Fst
}

// Values returns about c round values covering the domain, using steps of 1,
// 2 or 5 times a power of ten.
func (d Domain) Values(c int) []float64 {
	var (
		fst, lst = d.Fst, d.Lst
		reverse  = lst < fst
	)
	if fst == lst {
		return []float64{fst}
	}
	if c <= 0 {
		return nil
	}
	if reverse {
		fst, lst = lst, fst
	}
	inc := tickIncrement(fst, lst, c)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}
	var all []float64
	if inc > 0 {
		i0, i1 := math.Ceil(fst/inc), math.Floor(lst/inc)
		for i := i0; i <= i1; i++ {
			all = append(all, i*inc)
		}
	} else {
		inc = -inc
		i0, i1 := math.Ceil(fst*inc), math.Floor(lst*inc)
		for i := i0; i <= i1; i++ {
			all = append(all, i/inc)
		}
	}
	if reverse {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	return all
}

// Step returns the distance between two consecutive values returned by
// Values.
func (d Domain) Step(c int) float64 {
	fst, lst := d.Fst, d.Lst
	if lst < fst {
		fst, lst = lst, fst
	}
	if fst == lst || c <= 0 {
		return 0
	}
	inc := tickIncrement(fst, lst, c)
	if inc < 0 {
		return 1 / -inc
	}
	return inc
}

// tickIncrement returns a positive step, or the negated inverse of the step
// when it is lower than one so that values can be computed by division
// without accumulating float errors.
func tickIncrement(fst, lst float64, c int) float64 {
	var (
		step  = (lst - fst) / float64(c)
		power = math.Floor(math.Log10(step))
		diff  = step / math.Pow(10, power)
		mul   = 1.0
	)
	switch {
	case diff >= e10:
		mul = 10
	case diff >= e5:
		mul = 5
	case diff >= e2:
		mul = 2
	}
	if power >= 0 {
		return mul * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / mul
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

func (r Range) Middle() float64 {
	return (r.F + r.T) / 2
}

// Scaler maps values of a domain linearly onto a range. The range may be
// inverted, which is how y axes grow upward.
type Scaler struct {
	Range
	Domain
}

func NumberScaler(dom Domain, rg Range) Scaler {
	return Scaler{
		Range:  rg,
		Domain: dom,
	}
}

// Scale maps v onto the range. A domain without extent maps everything to
// the middle of the range.
func (s Scaler) Scale(v float64) float64 {
	if s.Extend() == 0 {
		return s.Middle()
	}
	return s.F + s.Diff(v)*s.Space()
}

func (s Scaler) Space() float64 {
	if s.Extend() == 0 {
		return 0
	}
	return s.Len() / s.Extend()
}

func (s Scaler) Ticks(c int) []float64 {
	return s.Values(c)
}
