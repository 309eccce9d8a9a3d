// Package ctc provides a catalogue of interval contractors for ctcnet
// networks: equality, affine links, binary arithmetic, sums, absolute
// value, squares, bounds, and vector component links.
//
// Every contractor here uses forward-backward propagation: the forward step
// narrows the result with the interval evaluation of the expression, the
// backward step narrows each operand with the inverse operation applied to
// the narrowed result. They are monotone and idempotent up to
// floating-point rounding, and they check the kind of their domains when
// added to a network.
package ctc

import (
	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

// Scalar is the domain type of interval variables.
type Scalar = ctcnet.Var[interval.Interval]

// Box is the domain type of interval vector variables.
type Box = ctcnet.Var[interval.Vector]

// NewScalar creates an interval domain [lo, hi].
func NewScalar(lo, hi float64) *Scalar {
	return ctcnet.NewVar(interval.New(lo, hi))
}

// NewBox creates an interval vector domain.
func NewBox(comps ...interval.Interval) *Box {
	return ctcnet.NewVar(interval.NewVector(comps...))
}

// scalar returns d as an interval domain. Contractors call it only on
// domains accepted by checkScalars.
func scalar(d ctcnet.Domain) *Scalar {
	return d.(*Scalar)
}

func checkScalars(name string, doms []ctcnet.Domain) error {
	for i, d := range doms {
		if _, ok := d.(*Scalar); !ok {
			return ctcnet.KindMismatch(name, i, "interval", d)
		}
	}
	return nil
}

// narrowAll applies the narrowed values to doms and reports whether any
// changed. Once one value is empty every domain is emptied.
func narrowAll(doms []ctcnet.Domain, vals []interval.Interval) bool {
	empty := false
	for _, v := range vals {
		if v.IsEmpty() {
			empty = true
			break
		}
	}
	changed := false
	for i, d := range doms {
		if empty {
			if !d.IsEmpty() {
				d.SetEmpty()
				changed = true
			}
			continue
		}
		if scalar(d).Narrow(vals[i]) {
			changed = true
		}
	}
	return changed
}

func values(doms []ctcnet.Domain) []interval.Interval {
	vals := make([]interval.Interval, len(doms))
	for i, d := range doms {
		vals[i] = scalar(d).Value()
	}
	return vals
}

// maxPasses bounds the forward-backward passes of one Contract call.
const maxPasses = 64

// settle repeats step until the values stop changing, so that a second
// Contract call right after the first finds nothing left to narrow.
func settle(vals []interval.Interval, step func(v []interval.Interval)) {
	prev := make([]interval.Interval, len(vals))
	for pass := 0; pass < maxPasses; pass++ {
		copy(prev, vals)
		step(vals)
		stable := true
		for i := range vals {
			if vals[i].IsEmpty() {
				return
			}
			if !vals[i].Equal(prev[i]) {
				stable = false
			}
		}
		if stable {
			return
		}
	}
}
