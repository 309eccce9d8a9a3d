package ctc

import (
	"github.com/gitrdm/ctcnet/pkg/ctcnet"
	"github.com/gitrdm/ctcnet/pkg/interval"
)

// Func adapts a narrowing function over interval values to a contractor.
// The function receives the current values and returns the narrowed ones;
// results are intersected with the current values, so a careless function
// can never enlarge a domain.
type Func struct {
	name  string
	arity int
	fn    func(in []interval.Interval) []interval.Interval
}

// NewFunc creates a contractor from fn. arity may be ctcnet.Variadic.
func NewFunc(name string, arity int, fn func(in []interval.Interval) []interval.Interval) *Func {
	return &Func{name: name, arity: arity, fn: fn}
}

// Arity implements ctcnet.Contractor.
func (f *Func) Arity() int { return f.arity }

// CheckDomains implements ctcnet.DomainChecker.
func (f *Func) CheckDomains(doms []ctcnet.Domain) error { return checkScalars(f.name, doms) }

// Contract implements ctcnet.Contractor. A result of the wrong length is
// ignored.
func (f *Func) Contract(doms []ctcnet.Domain) bool {
	v := values(doms)
	settle(v, func(v []interval.Interval) {
		out := f.fn(append([]interval.Interval(nil), v...))
		if len(out) != len(v) {
			return
		}
		for i := range v {
			v[i] = v[i].Intersect(out[i])
		}
	})
	return narrowAll(doms, v)
}

func (f *Func) String() string { return f.name }
