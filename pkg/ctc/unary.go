package ctc

import (
	"fmt"

	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

// Abs enforces y = |x| on the domains (x, y).
type Abs struct{}

// NewAbs creates the contractor y = |x|.
func NewAbs() *Abs { return &Abs{} }

// Arity implements ctcnet.Contractor.
func (*Abs) Arity() int { return 2 }

// CheckDomains implements ctcnet.DomainChecker.
func (a *Abs) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(a.String(), doms) }

// Contract implements ctcnet.Contractor.
func (*Abs) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		v[1] = v[1].Intersect(v[0].Abs())
		v[0] = symmetricPreimage(v[0], v[1])
	})
	return narrowAll(doms, v)
}

func (*Abs) String() string { return "y = |x|" }

// Sqr enforces y = x² on the domains (x, y).
type Sqr struct{}

// NewSqr creates the contractor y = x².
func NewSqr() *Sqr { return &Sqr{} }

// Arity implements ctcnet.Contractor.
func (*Sqr) Arity() int { return 2 }

// CheckDomains implements ctcnet.DomainChecker.
func (s *Sqr) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(s.String(), doms) }

// Contract implements ctcnet.Contractor.
func (*Sqr) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		v[1] = v[1].Intersect(v[0].Sqr())
		v[0] = symmetricPreimage(v[0], v[1].Sqrt())
	})
	return narrowAll(doms, v)
}

func (*Sqr) String() string { return "y = x²" }

// symmetricPreimage narrows x to the hull of x ∩ (r ∪ -r), r ≥ 0.
func symmetricPreimage(x, r interval.Interval) interval.Interval {
	return x.Intersect(r).Hull(x.Intersect(r.Neg()))
}

// In enforces x ∈ [lo, hi] on a single interval domain.
type In struct {
	bounds interval.Interval
}

// NewIn creates the contractor x ∈ bounds.
func NewIn(bounds interval.Interval) *In { return &In{bounds: bounds} }

// Arity implements ctcnet.Contractor.
func (*In) Arity() int { return 1 }

// CheckDomains implements ctcnet.DomainChecker.
func (c *In) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(c.String(), doms) }

// Contract implements ctcnet.Contractor.
func (c *In) Contract(doms []ctcnet.Domain) bool {
	return narrowAll(doms, []interval.Interval{scalar(doms[0]).Value().Intersect(c.bounds)})
}

func (c *In) String() string { return fmt.Sprintf("x ∈ %s", c.bounds) }

// InBox enforces x ∈ box on a single interval vector domain.
type InBox struct {
	box interval.Vector
}

// NewInBox creates the contractor x ∈ box.
func NewInBox(box interval.Vector) *InBox { return &InBox{box: box} }

// Arity implements ctcnet.Contractor.
func (*InBox) Arity() int { return 1 }

// CheckDomains implements ctcnet.DomainChecker.
func (c *InBox) CheckDomains(doms []ctcnet.Domain) error {
	b, ok := doms[0].(*Box)
	if !ok {
		return ctcnet.KindMismatch(c.String(), 0, "interval vector", doms[0])
	}
	if b.Dim() != c.box.Dim() {
		return ctcnet.DimensionMismatch(c.String(), 0, c.box.Dim(), b.Dim())
	}
	return nil
}

// Contract implements ctcnet.Contractor.
func (c *InBox) Contract(doms []ctcnet.Domain) bool {
	return doms[0].(*Box).Narrow(c.box)
}

func (c *InBox) String() string { return fmt.Sprintf("x ∈ %s", c.box) }
