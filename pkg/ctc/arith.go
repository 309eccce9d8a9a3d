package ctc

import (
	"fmt"

	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

// Offset enforces y = x + c on the domains (x, y).
//
// Forward: y ⊆ x + c. Backward: x ⊆ y - c.
//
// Example: x ∈ [0, 10], y ∈ [0, 10], c = 1 gives x = [0, 9], y = [1, 10].
type Offset struct {
	c float64
}

// NewOffset creates the contractor y = x + c.
func NewOffset(c float64) *Offset { return &Offset{c: c} }

// Arity implements ctcnet.Contractor.
func (o *Offset) Arity() int { return 2 }

// CheckDomains implements ctcnet.DomainChecker.
func (o *Offset) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(o.String(), doms) }

// Contract implements ctcnet.Contractor.
func (o *Offset) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		v[1] = v[1].Intersect(v[0].Offset(o.c))
		v[0] = v[0].Intersect(v[1].Offset(-o.c))
	})
	return narrowAll(doms, v)
}

func (o *Offset) String() string {
	if o.c < 0 {
		return fmt.Sprintf("y = x - %g", -o.c)
	}
	return fmt.Sprintf("y = x + %g", o.c)
}

// Scale enforces y = k·x on the domains (x, y).
type Scale struct {
	k float64
}

// NewScale creates the contractor y = k·x.
func NewScale(k float64) *Scale { return &Scale{k: k} }

// Arity implements ctcnet.Contractor.
func (s *Scale) Arity() int { return 2 }

// CheckDomains implements ctcnet.DomainChecker.
func (s *Scale) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(s.String(), doms) }

// Contract implements ctcnet.Contractor.
func (s *Scale) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		v[1] = v[1].Intersect(v[0].Scale(s.k))
		if s.k != 0 {
			v[0] = v[0].Intersect(v[1].Scale(1 / s.k))
		}
	})
	return narrowAll(doms, v)
}

func (s *Scale) String() string { return fmt.Sprintf("y = %g·x", s.k) }

// Add enforces c = a + b on the domains (a, b, c).
type Add struct{}

// NewAdd creates the contractor c = a + b.
func NewAdd() *Add { return &Add{} }

// Arity implements ctcnet.Contractor.
func (*Add) Arity() int { return 3 }

// CheckDomains implements ctcnet.DomainChecker.
func (a *Add) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(a.String(), doms) }

// Contract implements ctcnet.Contractor.
func (*Add) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		v[2] = v[2].Intersect(v[0].Add(v[1]))
		v[0] = v[0].Intersect(v[2].Sub(v[1]))
		v[1] = v[1].Intersect(v[2].Sub(v[0]))
	})
	return narrowAll(doms, v)
}

func (*Add) String() string { return "c = a + b" }

// Sub enforces c = a - b on the domains (a, b, c).
type Sub struct{}

// NewSub creates the contractor c = a - b.
func NewSub() *Sub { return &Sub{} }

// Arity implements ctcnet.Contractor.
func (*Sub) Arity() int { return 3 }

// CheckDomains implements ctcnet.DomainChecker.
func (s *Sub) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(s.String(), doms) }

// Contract implements ctcnet.Contractor.
func (*Sub) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		v[2] = v[2].Intersect(v[0].Sub(v[1]))
		v[0] = v[0].Intersect(v[2].Add(v[1]))
		v[1] = v[1].Intersect(v[0].Sub(v[2]))
	})
	return narrowAll(doms, v)
}

func (*Sub) String() string { return "c = a - b" }

// Mul enforces c = a·b on the domains (a, b, c).
//
// The backward step divides by the other operand. When that operand and c
// both contain 0 the operand being narrowed is unconstrained and is left
// untouched.
type Mul struct{}

// NewMul creates the contractor c = a·b.
func NewMul() *Mul { return &Mul{} }

// Arity implements ctcnet.Contractor.
func (*Mul) Arity() int { return 3 }

// CheckDomains implements ctcnet.DomainChecker.
func (m *Mul) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(m.String(), doms) }

// Contract implements ctcnet.Contractor.
func (*Mul) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		v[2] = v[2].Intersect(v[0].Mul(v[1]))
		v[0] = divInto(v[0], v[2], v[1])
		v[1] = divInto(v[1], v[2], v[0])
	})
	return narrowAll(doms, v)
}

func (*Mul) String() string { return "c = a·b" }

// divInto narrows x with {x | x·y ∈ c, y ∈ y}.
func divInto(x, c, y interval.Interval) interval.Interval {
	if y.Contains(0) && c.Contains(0) {
		return x
	}
	return x.Intersect(c.Div(y))
}

// Sum enforces the last domain to equal the sum of the others:
// (x1, ..., xn, s) with s = x1 + ... + xn.
type Sum struct{}

// NewSum creates the variadic sum contractor.
func NewSum() *Sum { return &Sum{} }

// Arity implements ctcnet.Contractor.
func (*Sum) Arity() int { return ctcnet.Variadic }

// CheckDomains implements ctcnet.DomainChecker. At least one term and the
// total are required.
func (s *Sum) CheckDomains(doms []ctcnet.Domain) error {
	if len(doms) < 2 {
		return &ctcnet.ConfigurationError{
			Code:       ctcnet.CodeArityMismatch,
			Contractor: s.String(),
			Position:   -1,
			Expected:   "at least 2 domains",
			Got:        fmt.Sprintf("%d domains", len(doms)),
		}
	}
	return checkScalars(s.String(), doms)
}

// Contract implements ctcnet.Contractor.
func (*Sum) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	n := len(v) - 1
	settle(v, func(v []interval.Interval) {
		total := interval.Point(0)
		for _, x := range v[:n] {
			total = total.Add(x)
		}
		v[n] = v[n].Intersect(total)
		for i := 0; i < n; i++ {
			rest := v[n]
			for j := 0; j < n; j++ {
				if j != i {
					rest = rest.Sub(v[j])
				}
			}
			v[i] = v[i].Intersect(rest)
		}
	})
	return narrowAll(doms, v)
}

func (*Sum) String() string { return "s = Σx" }
