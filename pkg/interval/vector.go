package interval

import (
	"math"
	"strings"
)

// Vector is an immutable box: a cartesian product of intervals.
// A vector is empty as soon as one of its components is empty; empty
// vectors are stored with every component empty.
type Vector struct {
	comps []Interval
}

// NewVector returns the box made of the given components.
func NewVector(comps ...Interval) Vector {
	v := Vector{comps: make([]Interval, len(comps))}
	copy(v.comps, comps)
	v.canonicalize()
	return v
}

// EntireVector returns ℝⁿ.
func EntireVector(n int) Vector {
	v := Vector{comps: make([]Interval, n)}
	for k := range v.comps {
		v.comps[k] = Entire()
	}
	return v
}

// EmptyVector returns the empty box of dimension n.
func EmptyVector(n int) Vector {
	v := Vector{comps: make([]Interval, n)}
	for k := range v.comps {
		v.comps[k] = EmptyInterval()
	}
	return v
}

func (v *Vector) canonicalize() {
	for _, c := range v.comps {
		if c.IsEmpty() {
			for k := range v.comps {
				v.comps[k] = EmptyInterval()
			}
			return
		}
	}
}

// Dim returns the number of components.
func (v Vector) Dim() int { return len(v.comps) }

// At returns component k.
func (v Vector) At(k int) Interval { return v.comps[k] }

// With returns a copy of v whose component k is replaced by c.
func (v Vector) With(k int, c Interval) Vector {
	out := Vector{comps: make([]Interval, len(v.comps))}
	copy(out.comps, v.comps)
	out.comps[k] = c
	out.canonicalize()
	return out
}

// Components returns a copy of the components.
func (v Vector) Components() []Interval {
	out := make([]Interval, len(v.comps))
	copy(out, v.comps)
	return out
}

// IsEmpty reports whether the box is empty. A zero-dimensional vector is
// not empty.
func (v Vector) IsEmpty() bool {
	return len(v.comps) > 0 && v.comps[0].IsEmpty()
}

// Size returns the sum of the component diameters (+Inf when a component
// is unbounded, 0 when empty). Unlike the product volume it still
// decreases when one component is degenerate.
func (v Vector) Size() float64 {
	if v.IsEmpty() {
		return 0
	}
	s := 0.0
	for _, c := range v.comps {
		d := c.Diam()
		if math.IsInf(d, 1) {
			return d
		}
		s += d
	}
	return s
}

// Volume returns the product of the component diameters.
func (v Vector) Volume() float64 {
	if v.IsEmpty() {
		return 0
	}
	p := 1.0
	for _, c := range v.comps {
		p *= c.Diam()
	}
	return p
}

// Subset reports whether v ⊆ o. Boxes of different dimensions are never
// subsets of each other.
func (v Vector) Subset(o Vector) bool {
	if len(v.comps) != len(o.comps) {
		return false
	}
	if v.IsEmpty() {
		return true
	}
	for k, c := range v.comps {
		if !c.Subset(o.comps[k]) {
			return false
		}
	}
	return true
}

// Equal reports set equality.
func (v Vector) Equal(o Vector) bool {
	if len(v.comps) != len(o.comps) {
		return false
	}
	for k, c := range v.comps {
		if !c.Equal(o.comps[k]) {
			return false
		}
	}
	return true
}

// Intersect returns v ∩ o. A dimension mismatch yields the empty box of
// v's dimension.
func (v Vector) Intersect(o Vector) Vector {
	if len(v.comps) != len(o.comps) {
		return EmptyVector(len(v.comps))
	}
	out := Vector{comps: make([]Interval, len(v.comps))}
	for k, c := range v.comps {
		out.comps[k] = c.Intersect(o.comps[k])
	}
	out.canonicalize()
	return out
}

// Hull returns the smallest box containing v and o. A dimension mismatch
// yields the empty box of v's dimension.
func (v Vector) Hull(o Vector) Vector {
	if len(v.comps) != len(o.comps) {
		return EmptyVector(len(v.comps))
	}
	if v.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return v
	}
	out := Vector{comps: make([]Interval, len(v.comps))}
	for k, c := range v.comps {
		out.comps[k] = c.Hull(o.comps[k])
	}
	return out
}

// Add returns the component-wise sum.
func (v Vector) Add(o Vector) Vector {
	if len(v.comps) != len(o.comps) {
		return EmptyVector(len(v.comps))
	}
	out := Vector{comps: make([]Interval, len(v.comps))}
	for k, c := range v.comps {
		out.comps[k] = c.Add(o.comps[k])
	}
	out.canonicalize()
	return out
}

// Empty returns the empty box with v's dimension.
func (v Vector) Empty() Vector { return EmptyVector(len(v.comps)) }

// String formats the box as "([a, b] ; [c, d])".
func (v Vector) String() string {
	parts := make([]string, len(v.comps))
	for k, c := range v.comps {
		parts[k] = c.String()
	}
	return "(" + strings.Join(parts, " ; ") + ")"
}
