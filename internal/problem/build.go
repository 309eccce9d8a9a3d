package problem

import (
	"fmt"

	"github.com/gitrdm/ctcnet/pkg/ctc"
	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

// Instance is a problem wired into a network.
type Instance struct {
	Network *ctcnet.Network

	order   []string
	domains map[string]ctcnet.Domain
}

// Domain returns the domain declared under name, or nil.
func (in *Instance) Domain(name string) ctcnet.Domain {
	return in.domains[name]
}

// Scalar returns the interval domain declared under name, or nil.
func (in *Instance) Scalar(name string) *ctc.Scalar {
	s, _ := in.domains[name].(*ctc.Scalar)
	return s
}

// VarValue is the state of one variable after contraction.
type VarValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Empty bool   `json:"empty"`
}

// Values returns every variable in declaration order.
func (in *Instance) Values() []VarValue {
	out := make([]VarValue, 0, len(in.order))
	for _, name := range in.order {
		d := in.domains[name]
		val := d.String()
		switch v := d.(type) {
		case *ctc.Scalar:
			val = v.Value().String()
		case *ctc.Box:
			val = v.Value().String()
		}
		out = append(out, VarValue{Name: name, Value: val, Empty: d.IsEmpty()})
	}
	return out
}

// Build creates the problem's domains and wires its constraints into n.
// Configuration errors from the network are returned with the index of the
// offending constraint.
func (p *Problem) Build(n *ctcnet.Network) (*Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	in := &Instance{
		Network: n,
		order:   make([]string, 0, len(p.Variables)),
		domains: make(map[string]ctcnet.Domain, len(p.Variables)),
	}

	for _, v := range p.Variables {
		var d ctcnet.Domain
		if v.IsVector() {
			box, err := toVector(v.Vector)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
			d = ctcnet.NewVarWithName(box, v.Name)
		} else {
			iv, err := toInterval(v.Interval)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", v.Name, err)
			}
			d = ctcnet.NewVarWithName(iv, v.Name)
		}
		in.order = append(in.order, v.Name)
		in.domains[v.Name] = d
		if err := n.SetDomainName(d, v.Name); err != nil {
			return nil, err
		}
	}

	for i, c := range p.Constraints {
		contractor, err := newContractor(c)
		if err != nil {
			return nil, fmt.Errorf("constraint %d (%s): %w", i, c.Type, err)
		}
		doms := make([]ctcnet.Domain, len(c.Vars))
		for j, name := range c.Vars {
			doms[j] = in.domains[name]
		}
		if err := n.Add(contractor, doms...); err != nil {
			return nil, fmt.Errorf("constraint %d (%s): %w", i, c.Type, err)
		}
		if c.Name != "" {
			n.SetContractorName(contractor, c.Name)
		}
	}
	return in, nil
}

func newContractor(c Constraint) (ctcnet.Contractor, error) {
	switch c.Type {
	case "equal":
		return ctc.NewEqual(), nil
	case "offset":
		return ctc.NewOffset(*c.Value), nil
	case "scale":
		return ctc.NewScale(*c.Value), nil
	case "add":
		return ctc.NewAdd(), nil
	case "sub":
		return ctc.NewSub(), nil
	case "mul":
		return ctc.NewMul(), nil
	case "sum":
		return ctc.NewSum(), nil
	case "abs":
		return ctc.NewAbs(), nil
	case "sqr":
		return ctc.NewSqr(), nil
	case "component":
		return ctc.NewComponent(*c.Index), nil
	case "in":
		if c.Box != nil {
			box, err := toVector(c.Box)
			if err != nil {
				return nil, err
			}
			return ctc.NewInBox(box), nil
		}
		iv, err := toInterval(c.Interval)
		if err != nil {
			return nil, err
		}
		return ctc.NewIn(iv), nil
	}
	return nil, fmt.Errorf("unknown constraint type %q", c.Type)
}

func toInterval(b []Bound) (interval.Interval, error) {
	if len(b) != 2 {
		return interval.Interval{}, fmt.Errorf("interval needs 2 bounds, got %d", len(b))
	}
	return interval.New(float64(b[0]), float64(b[1])), nil
}

func toVector(rows [][]Bound) (interval.Vector, error) {
	comps := make([]interval.Interval, len(rows))
	for k, row := range rows {
		iv, err := toInterval(row)
		if err != nil {
			return interval.Vector{}, fmt.Errorf("component %d: %w", k, err)
		}
		comps[k] = iv
	}
	return interval.NewVector(comps...), nil
}
