package ctcnet

import "golang.org/x/text/unicode/norm"

// Value is an element of a lattice ordered by set inclusion: an interval,
// an interval vector, or any user-defined enclosure. Values are immutable;
// every method returns a new value.
//
// Implementations must satisfy:
//   - v.Subset(v) is true
//   - v.Intersect(o).Subset(v) and v.Intersect(o).Subset(o)
//   - v.Empty() is empty and has v's dimension
//   - Size is non-negative, 0 when empty, +Inf when unbounded, and does not
//     increase when the value shrinks
type Value[T any] interface {
	IsEmpty() bool
	Size() float64
	Dim() int
	Subset(o T) bool
	Equal(o T) bool
	Intersect(o T) T
	Empty() T
	String() string
}

// Domain is the engine's view of a shared, shrink-only value cell. The
// network never looks inside a domain: it only needs to know whether it is
// empty, how large it is, and whether it changed since it last looked.
//
// Var is the standard implementation. Custom implementations must be
// comparable (pointer types) because networks index domains by identity.
type Domain interface {
	// IsEmpty reports whether the domain holds the empty set.
	IsEmpty() bool

	// Size measures the domain; used only to detect significant contractions.
	Size() float64

	// Dim returns the dimension of the held value.
	Dim() int

	// Revision increases every time the held value changes.
	Revision() uint64

	// SetEmpty replaces the value with the empty set of the same shape.
	SetEmpty()

	// Name returns the label given with SetName, or "".
	Name() string

	String() string
}

// Var is a Domain holding a Value of type T.
//
// Contractors narrow a Var in place with Set or Narrow. A Var may be shared
// by any number of contractors and networks. Vars are not synchronized.
type Var[T Value[T]] struct {
	val  T
	rev  uint64
	name string
}

// NewVar creates a domain holding v.
func NewVar[T Value[T]](v T) *Var[T] {
	return &Var[T]{val: v}
}

// NewVarWithName creates a named domain for easier debugging and graph export.
func NewVarWithName[T Value[T]](v T, name string) *Var[T] {
	d := NewVar(v)
	d.SetName(name)
	return d
}

// Value returns the current value.
func (d *Var[T]) Value() T { return d.val }

// Set replaces the value with v, which must be a subset of the current
// value. It returns an *InvariantViolationError otherwise and leaves the
// domain unchanged.
func (d *Var[T]) Set(v T) error {
	if !v.Subset(d.val) {
		return &InvariantViolationError{Domain: d.name, Current: d.val.String(), Proposed: v.String()}
	}
	d.store(v)
	return nil
}

// Narrow intersects the value with v and reports whether it changed. It is
// the clamping counterpart of Set and never fails.
func (d *Var[T]) Narrow(v T) bool {
	return d.store(d.val.Intersect(v))
}

// Reset replaces the value with v even if v is larger. It is meant for
// code outside the engine, such as streaming new measurements into a domain
// already wired into a network; the network notices the change on its
// next run.
func (d *Var[T]) Reset(v T) {
	d.store(v)
}

func (d *Var[T]) store(v T) bool {
	if v.Equal(d.val) {
		return false
	}
	d.val = v
	d.rev++
	return true
}

// IsEmpty implements Domain.
func (d *Var[T]) IsEmpty() bool { return d.val.IsEmpty() }

// Size implements Domain.
func (d *Var[T]) Size() float64 { return d.val.Size() }

// Dim implements Domain.
func (d *Var[T]) Dim() int { return d.val.Dim() }

// Revision implements Domain.
func (d *Var[T]) Revision() uint64 { return d.rev }

// SetEmpty implements Domain.
func (d *Var[T]) SetEmpty() {
	if !d.val.IsEmpty() {
		d.store(d.val.Empty())
	}
}

// Name implements Domain.
func (d *Var[T]) Name() string { return d.name }

// SetName labels the domain. Names are stored in Unicode NFC form so that
// visually identical labels compare equal.
func (d *Var[T]) SetName(name string) {
	d.name = norm.NFC.String(name)
}

// String implements Domain.
func (d *Var[T]) String() string {
	if d.name == "" {
		return d.val.String()
	}
	return d.name + "=" + d.val.String()
}
