// Package interval provides the closed real intervals and interval vectors
// that ctcnet domains are built on.
//
// An Interval [lo, hi] is the set {x ∈ ℝ | lo ≤ x ≤ hi}. Bounds may be
// infinite. The empty set has a single canonical representation and every
// operation on an empty operand yields the empty set.
//
// Mathematical properties of the provided operations:
//   - Intersection: [a,b] ∩ [c,d] = [max(a,c), min(b,d)]
//   - Hull: [a,b] ∪ [c,d] = [min(a,c), max(b,d)] (convex hull)
//   - Sum: [a,b] + [c,d] = [a+c, b+d]
//   - Difference: [a,b] - [c,d] = [a-d, b-c]
//   - Product: [a,b] · [c,d] = [min(ac,ad,bc,bd), max(ac,ad,bc,bd)]
//
// Values are immutable. No directed rounding is performed: the bounds are
// exactly what float64 arithmetic produces.
package interval

import (
	"fmt"
	"math"
)

// Interval is a closed, possibly unbounded, possibly empty real interval.
// The zero value is the degenerate interval [0, 0].
type Interval struct {
	lo, hi float64
}

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// New returns [lo, hi]. It returns the empty interval when lo > hi, when a
// bound is NaN, or when the interval would only contain an infinity.
func New(lo, hi float64) Interval {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi || lo == posInf || hi == negInf {
		return EmptyInterval()
	}
	return Interval{lo: lo, hi: hi}
}

// Point returns the degenerate interval [x, x].
func Point(x float64) Interval {
	return New(x, x)
}

// Entire returns (-∞, +∞).
func Entire() Interval {
	return Interval{lo: negInf, hi: posInf}
}

// EmptyInterval returns the empty set.
func EmptyInterval() Interval {
	return Interval{lo: posInf, hi: negInf}
}

// Lb returns the lower bound. It is +Inf for the empty interval.
func (i Interval) Lb() float64 { return i.lo }

// Ub returns the upper bound. It is -Inf for the empty interval.
func (i Interval) Ub() float64 { return i.hi }

// IsEmpty reports whether i is the empty set.
func (i Interval) IsEmpty() bool { return i.lo > i.hi }

// IsUnbounded reports whether one of the bounds is infinite.
func (i Interval) IsUnbounded() bool {
	return !i.IsEmpty() && (math.IsInf(i.lo, 0) || math.IsInf(i.hi, 0))
}

// IsDegenerate reports whether i is a single point.
func (i Interval) IsDegenerate() bool { return !i.IsEmpty() && i.lo == i.hi }

// Diam returns hi - lo, +Inf when unbounded and 0 when empty.
func (i Interval) Diam() float64 {
	if i.IsEmpty() {
		return 0
	}
	return i.hi - i.lo
}

// Mid returns the midpoint. Unbounded intervals return the finite bound,
// 0 for the entire line, and NaN for the empty set.
func (i Interval) Mid() float64 {
	switch {
	case i.IsEmpty():
		return math.NaN()
	case math.IsInf(i.lo, -1) && math.IsInf(i.hi, 1):
		return 0
	case math.IsInf(i.lo, -1):
		return i.hi
	case math.IsInf(i.hi, 1):
		return i.lo
	}
	return i.lo + (i.hi-i.lo)/2
}

// Contains reports whether x ∈ i.
func (i Interval) Contains(x float64) bool {
	return !i.IsEmpty() && i.lo <= x && x <= i.hi
}

// Size is the diameter of the interval. It is the magnitude ctcnet uses to
// measure how much a domain has been contracted.
func (i Interval) Size() float64 { return i.Diam() }

// Dim returns 1.
func (i Interval) Dim() int { return 1 }

// Subset reports whether i ⊆ o. The empty set is a subset of everything.
func (i Interval) Subset(o Interval) bool {
	if i.IsEmpty() {
		return true
	}
	if o.IsEmpty() {
		return false
	}
	return o.lo <= i.lo && i.hi <= o.hi
}

// Equal reports set equality.
func (i Interval) Equal(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return i.IsEmpty() && o.IsEmpty()
	}
	return i.lo == o.lo && i.hi == o.hi
}

// Intersect returns i ∩ o.
func (i Interval) Intersect(o Interval) Interval {
	if i.IsEmpty() || o.IsEmpty() {
		return EmptyInterval()
	}
	return New(math.Max(i.lo, o.lo), math.Min(i.hi, o.hi))
}

// Hull returns the smallest interval containing both i and o.
func (i Interval) Hull(o Interval) Interval {
	if i.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return i
	}
	return Interval{lo: math.Min(i.lo, o.lo), hi: math.Max(i.hi, o.hi)}
}

// Empty returns the empty interval.
func (i Interval) Empty() Interval { return EmptyInterval() }

// Inflate returns [lo-r, hi+r].
func (i Interval) Inflate(r float64) Interval {
	if i.IsEmpty() {
		return i
	}
	return New(i.lo-r, i.hi+r)
}

// String formats the interval as "[lo, hi]" or "∅".
func (i Interval) String() string {
	if i.IsEmpty() {
		return "∅"
	}
	return fmt.Sprintf("[%g, %g]", i.lo, i.hi)
}
