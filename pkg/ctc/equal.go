package ctc

import (
	"fmt"

	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

// Equal enforces x = y for two interval domains or two interval vector
// domains of the same dimension. Both are narrowed to their intersection.
type Equal struct{}

// NewEqual creates the contractor x = y.
func NewEqual() *Equal { return &Equal{} }

// Arity implements ctcnet.Contractor.
func (*Equal) Arity() int { return 2 }

// CheckDomains implements ctcnet.DomainChecker.
func (e *Equal) CheckDomains(doms []ctcnet.Domain) error {
	switch x := doms[0].(type) {
	case *Scalar:
		return checkScalars(e.String(), doms)
	case *Box:
		y, ok := doms[1].(*Box)
		if !ok {
			return ctcnet.KindMismatch(e.String(), 1, "interval vector", doms[1])
		}
		if x.Dim() != y.Dim() {
			return ctcnet.DimensionMismatch(e.String(), 1, x.Dim(), y.Dim())
		}
		return nil
	default:
		return ctcnet.KindMismatch(e.String(), 0, "interval or interval vector", doms[0])
	}
}

// Contract implements ctcnet.Contractor.
func (*Equal) Contract(doms []ctcnet.Domain) bool {
	if x, ok := doms[0].(*Box); ok {
		y := doms[1].(*Box)
		v := x.Value().Intersect(y.Value())
		cx := x.Narrow(v)
		cy := y.Narrow(v)
		return cx || cy
	}
	x, y := scalar(doms[0]), scalar(doms[1])
	v := x.Value().Intersect(y.Value())
	return narrowAll(doms, []interval.Interval{v, v})
}

func (*Equal) String() string { return "x = y" }

// Component links component i of an interval vector domain to an interval
// domain: (vec, xi) with xi = vec[i]. Narrowing either side narrows the
// other, and an empty component empties the whole vector.
type Component struct {
	index int
}

// NewComponent creates the link for component i.
func NewComponent(i int) *Component { return &Component{index: i} }

// Index returns the linked component index.
func (c *Component) Index() int { return c.index }

// Arity implements ctcnet.Contractor.
func (*Component) Arity() int { return 2 }

// CheckDomains implements ctcnet.DomainChecker.
func (c *Component) CheckDomains(doms []ctcnet.Domain) error {
	vec, ok := doms[0].(*Box)
	if !ok {
		return ctcnet.KindMismatch(c.String(), 0, "interval vector", doms[0])
	}
	if c.index < 0 || c.index >= vec.Dim() {
		return &ctcnet.ConfigurationError{
			Code:       ctcnet.CodeDimensionMismatch,
			Contractor: c.String(),
			Position:   0,
			Expected:   fmt.Sprintf("dimension > %d", c.index),
			Got:        fmt.Sprintf("dimension %d", vec.Dim()),
		}
	}
	if _, ok := doms[1].(*Scalar); !ok {
		return ctcnet.KindMismatch(c.String(), 1, "interval", doms[1])
	}
	return nil
}

// Contract implements ctcnet.Contractor.
func (c *Component) Contract(doms []ctcnet.Domain) bool {
	vec, xi := doms[0].(*Box), scalar(doms[1])
	v := vec.Value().At(c.index).Intersect(xi.Value())
	if v.IsEmpty() {
		changed := !vec.IsEmpty() || !xi.IsEmpty()
		vec.SetEmpty()
		xi.SetEmpty()
		return changed
	}
	cv := vec.Narrow(vec.Value().With(c.index, v))
	cx := xi.Narrow(v)
	return cv || cx
}

func (c *Component) String() string { return fmt.Sprintf("x = v[%d]", c.index) }

// ComponentVar returns an intermediate interval domain of n bound to
// component i of vec. Requesting the same component twice returns a new
// domain linked the same way, so both stay consistent.
func ComponentVar(n *ctcnet.Network, vec *Box, i int) (*Scalar, error) {
	if i < 0 || i >= vec.Dim() {
		return nil, &ctcnet.ConfigurationError{
			Code:       ctcnet.CodeDimensionMismatch,
			Contractor: NewComponent(i).String(),
			Position:   0,
			Expected:   fmt.Sprintf("dimension > %d", i),
			Got:        fmt.Sprintf("dimension %d", vec.Dim()),
		}
	}
	xi := ctcnet.CreateIntermVar(n, vec.Value().At(i))
	if vec.Name() != "" {
		xi.SetName(fmt.Sprintf("%s[%d]", vec.Name(), i))
	}
	if err := n.Add(NewComponent(i), vec, xi); err != nil {
		return nil, err
	}
	return xi, nil
}
