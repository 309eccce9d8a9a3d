package ctcnet

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them.
var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("ctcnet: configuration error")

	// ErrInvariantViolation matches every *InvariantViolationError.
	ErrInvariantViolation = errors.New("ctcnet: invariant violation")

	// ErrInvalidRatio is returned for a fixpoint ratio outside [0, 1].
	ErrInvalidRatio = errors.New("ctcnet: fixpoint ratio must be in [0, 1]")
)

// ConfigurationErrorCode categorizes structural mistakes detected when a
// contractor is wired to its domains.
type ConfigurationErrorCode string

const (
	// CodeArityMismatch: the number of domains differs from the contractor's arity.
	CodeArityMismatch ConfigurationErrorCode = "ARITY_MISMATCH"

	// CodeDimensionMismatch: a domain has the wrong dimension.
	CodeDimensionMismatch ConfigurationErrorCode = "DIMENSION_MISMATCH"

	// CodeKindMismatch: a domain has the wrong value kind.
	CodeKindMismatch ConfigurationErrorCode = "KIND_MISMATCH"

	// CodeNoDomains: a contractor was added without domains.
	CodeNoDomains ConfigurationErrorCode = "NO_DOMAINS"

	// CodeNilDomain: one of the domains is nil.
	CodeNilDomain ConfigurationErrorCode = "NIL_DOMAIN"

	// CodeNilContractor: the contractor is nil.
	CodeNilContractor ConfigurationErrorCode = "NIL_CONTRACTOR"

	// CodeInvalidDomain: the domain cannot be tracked (not comparable).
	CodeInvalidDomain ConfigurationErrorCode = "INVALID_DOMAIN"

	// CodeInvalidNetwork: a nil network, or one that would contain itself.
	CodeInvalidNetwork ConfigurationErrorCode = "INVALID_NETWORK"
)

// ConfigurationError reports an arity or dimension mismatch between a
// contractor and the domains it is wired to. It is raised synchronously by
// Add and never during propagation.
type ConfigurationError struct {
	// Code identifies the error category.
	Code ConfigurationErrorCode

	// Contractor names the offending contractor.
	Contractor string

	// Position is the index of the offending domain, or -1.
	Position int

	// Expected and Got describe the mismatch, e.g. "3 domains" / "2 domains".
	Expected string
	Got      string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := e.Message
	if msg == "" && (e.Expected != "" || e.Got != "") {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	}
	if e.Position >= 0 {
		return fmt.Sprintf("%s: %s: domain %d: %s", e.Code, e.Contractor, e.Position, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Contractor, msg)
}

// Is makes errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// DimensionMismatch builds the error a DomainChecker returns when the
// domain at position pos has dimension got instead of want.
func DimensionMismatch(contractor string, pos, want, got int) *ConfigurationError {
	return &ConfigurationError{
		Code:       CodeDimensionMismatch,
		Contractor: contractor,
		Position:   pos,
		Expected:   fmt.Sprintf("dimension %d", want),
		Got:        fmt.Sprintf("dimension %d", got),
	}
}

// KindMismatch builds the error a DomainChecker returns when the domain at
// position pos does not hold the expected value kind.
func KindMismatch(contractor string, pos int, want string, got Domain) *ConfigurationError {
	return &ConfigurationError{
		Code:       CodeKindMismatch,
		Contractor: contractor,
		Position:   pos,
		Expected:   want,
		Got:        fmt.Sprintf("%T", got),
	}
}

// InvariantViolationError is returned by Var.Set when the proposed value is
// not a subset of the current one.
type InvariantViolationError struct {
	Domain   string
	Current  string
	Proposed string
}

// Error implements the error interface.
func (e *InvariantViolationError) Error() string {
	name := e.Domain
	if name == "" {
		name = "domain"
	}
	return fmt.Sprintf("%s: %s is not a subset of %s", name, e.Proposed, e.Current)
}

// Is makes errors.Is(err, ErrInvariantViolation) succeed.
func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}
