package ctcnet

import "fmt"

// Variadic is the arity of contractors that accept any non-zero number of
// domains.
const Variadic = -1

// Contractor narrows an ordered tuple of domains without removing any
// point that satisfies the relation it enforces.
//
// Contract must:
//   - only narrow the domains it is given (monotonicity)
//   - be idempotent: a second call with unchanged inputs changes nothing
//   - signal infeasibility by emptying domains, never by panicking
//   - report whether it changed anything
//
// Contractors are stateless with respect to anything but their domains.
type Contractor interface {
	// Arity returns the number of domains Contract expects, or Variadic.
	Arity() int

	// Contract narrows doms in place and reports whether any changed.
	Contract(doms []Domain) bool
}

// DomainChecker is implemented by contractors that constrain the kind or
// dimension of their domains. CheckDomains runs once, when the contractor
// is added to a network; a non-nil error rejects the wiring.
type DomainChecker interface {
	CheckDomains(doms []Domain) error
}

// ContractorFunc adapts a function to the Contractor interface.
type ContractorFunc struct {
	name  string
	arity int
	fn    func(doms []Domain) bool
}

// NewContractorFunc wraps fn as a contractor of the given arity.
func NewContractorFunc(name string, arity int, fn func(doms []Domain) bool) *ContractorFunc {
	return &ContractorFunc{name: name, arity: arity, fn: fn}
}

// Arity implements Contractor.
func (c *ContractorFunc) Arity() int { return c.arity }

// Contract implements Contractor.
func (c *ContractorFunc) Contract(doms []Domain) bool { return c.fn(doms) }

// String returns the contractor name.
func (c *ContractorFunc) String() string { return c.name }

// contractorName returns a label for logs and errors.
func contractorName(c Contractor) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
