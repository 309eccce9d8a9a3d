package interval

import "math"

// Add returns i + o = [a+c, b+d].
func (i Interval) Add(o Interval) Interval {
	if i.IsEmpty() || o.IsEmpty() {
		return EmptyInterval()
	}
	return New(i.lo+o.lo, i.hi+o.hi)
}

// Sub returns i - o = [a-d, b-c].
func (i Interval) Sub(o Interval) Interval {
	if i.IsEmpty() || o.IsEmpty() {
		return EmptyInterval()
	}
	return New(i.lo-o.hi, i.hi-o.lo)
}

// Neg returns -i.
func (i Interval) Neg() Interval {
	if i.IsEmpty() {
		return i
	}
	return Interval{lo: -i.hi, hi: -i.lo}
}

// Offset returns i + c for a scalar c.
func (i Interval) Offset(c float64) Interval {
	return i.Add(Point(c))
}

// Scale returns k·i for a scalar k.
func (i Interval) Scale(k float64) Interval {
	return i.Mul(Point(k))
}

// Mul returns the interval product. By convention 0·∞ = 0.
func (i Interval) Mul(o Interval) Interval {
	if i.IsEmpty() || o.IsEmpty() {
		return EmptyInterval()
	}
	p1 := mulBound(i.lo, o.lo)
	p2 := mulBound(i.lo, o.hi)
	p3 := mulBound(i.hi, o.lo)
	p4 := mulBound(i.hi, o.hi)
	return New(math.Min(math.Min(p1, p2), math.Min(p3, p4)),
		math.Max(math.Max(p1, p2), math.Max(p3, p4)))
}

func mulBound(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a * b
}

// Div returns the hull of {x/y | x ∈ i, y ∈ o, y ≠ 0}.
//
// When o contains 0 in its interior the exact result is a union of two
// half-lines; its hull is the entire line, which is what Div returns.
// Division by [0, 0] is empty.
func (i Interval) Div(o Interval) Interval {
	if i.IsEmpty() || o.IsEmpty() {
		return EmptyInterval()
	}
	if o.lo == 0 && o.hi == 0 {
		return EmptyInterval()
	}
	if o.Contains(0) {
		if o.lo == 0 {
			return i.divPositiveFromZero(o.hi)
		}
		if o.hi == 0 {
			return i.divPositiveFromZero(-o.lo).Neg()
		}
		return Entire()
	}
	q := [4]float64{i.lo / o.lo, i.lo / o.hi, i.hi / o.lo, i.hi / o.hi}
	lo, hi := posInf, negInf
	for _, v := range q {
		if math.IsNaN(v) {
			return Entire()
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return New(lo, hi)
}

// divPositiveFromZero divides i by [0, d] with d > 0.
func (i Interval) divPositiveFromZero(d float64) Interval {
	switch {
	case i.lo >= 0 && i.hi > 0:
		if i.lo == 0 {
			return New(0, posInf)
		}
		return New(i.lo/d, posInf)
	case i.hi <= 0 && i.lo < 0:
		if i.hi == 0 {
			return New(negInf, 0)
		}
		return New(negInf, i.hi/d)
	case i.lo == 0 && i.hi == 0:
		return Point(0)
	}
	return Entire()
}

// Abs returns {|x| | x ∈ i}.
func (i Interval) Abs() Interval {
	switch {
	case i.IsEmpty():
		return i
	case i.lo >= 0:
		return i
	case i.hi <= 0:
		return i.Neg()
	}
	return Interval{lo: 0, hi: math.Max(-i.lo, i.hi)}
}

// Sqr returns {x² | x ∈ i}.
func (i Interval) Sqr() Interval {
	a := i.Abs()
	if a.IsEmpty() {
		return a
	}
	return Interval{lo: a.lo * a.lo, hi: a.hi * a.hi}
}

// Sqrt returns {√x | x ∈ i, x ≥ 0}.
func (i Interval) Sqrt() Interval {
	p := i.Intersect(New(0, posInf))
	if p.IsEmpty() {
		return p
	}
	return Interval{lo: math.Sqrt(p.lo), hi: math.Sqrt(p.hi)}
}
