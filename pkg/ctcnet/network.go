package ctcnet

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// State is the propagation state of a network as a whole.
type State int

const (
	// StateIdle: contractors are pending and no run has started since.
	StateIdle State = iota
	// StatePropagating: a Contract call is in progress.
	StatePropagating
	// StateFixpoint: the worklist is empty; no contractor can narrow further.
	StateFixpoint
	// StateBudgetExhausted: the last run hit its time or iteration budget
	// with contractors still pending. A further Contract call resumes it.
	StateBudgetExhausted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePropagating:
		return "propagating"
	case StateFixpoint:
		return "fixpoint"
	case StateBudgetExhausted:
		return "budget_exhausted"
	default:
		return "unknown"
	}
}

// domNode is the network's record of one domain.
type domNode struct {
	dom   Domain
	ctcs  []int // contractors reading this domain (back-references, not owned)
	owned bool
	reset func()
	label string

	// baseline is the size at the last significant change; seenRev is the
	// last revision the network observed.
	baseline float64
	seenRev  uint64
}

// ctcNode is the network's record of one contractor wired to its domains.
type ctcNode struct {
	ctc     Contractor
	doms    []int
	view    []Domain
	active  bool
	sweep   bool
	selfRef bool
	label   string
}

// parentLink records that a network is nested in parent as contractor cid.
type parentLink struct {
	parent *Network
	cid    int
}

type ctcKey struct {
	ctc  Contractor
	doms string
}

// Network is a Contractor Network: a bipartite graph of domains and
// contractors plus the worklist that drives it to a fixpoint.
//
// Domains passed to Add are referenced, not owned: callers keep them alive
// and read the narrowed values back after Contract. Domains created with
// CreateIntermVar are owned by the network.
//
// Thread safety: a Network is not safe for concurrent use, and domains are
// not synchronized. Independent networks that share no domain may be
// contracted in parallel (see ContractAll).
type Network struct {
	id      string
	config  Config
	logger  zerolog.Logger
	monitor *Monitor

	domains  arena[domNode]
	domIndex map[Domain]int
	ctcs     arena[ctcNode]
	ctcIndex map[ctcKey]int
	owned    []int
	subnets  []*Network
	parents  []parentLink

	queue   *worklist
	state   State
	running bool
	calls   int
}

// New creates an empty network with DefaultConfig.
func New() *Network {
	n, _ := NewWithConfig(DefaultConfig())
	return n
}

// NewWithConfig creates an empty network with the given convergence
// policy. A nil config means DefaultConfig.
func NewWithConfig(config *Config) (*Network, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Network{
		id:       uuid.Must(uuid.NewV7()).String(),
		config:   *config,
		logger:   zerolog.Nop(),
		domIndex: make(map[Domain]int),
		ctcIndex: make(map[ctcKey]int),
		queue:    newWorklist(),
		state:    StateIdle,
	}, nil
}

// ID returns the network's unique identifier, used to correlate logs.
func (n *Network) ID() string { return n.id }

// Config returns a copy of the current convergence policy.
func (n *Network) Config() Config { return n.config }

// SetConfig replaces the convergence policy.
func (n *Network) SetConfig(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return err
	}
	n.config = *config
	for _, sub := range n.subnets {
		sub.config.FixedPointRatio = config.FixedPointRatio
	}
	return nil
}

// SetLogger sets the logger used for run summaries. The default discards
// everything.
func (n *Network) SetLogger(logger zerolog.Logger) {
	n.logger = logger.With().Str("network_id", n.id).Logger()
}

// SetMonitor enables statistics collection.
func (n *Network) SetMonitor(monitor *Monitor) {
	n.monitor = monitor
}

// Monitor returns the monitor set with SetMonitor, or nil.
func (n *Network) Monitor() *Monitor { return n.monitor }

// SetFixedPointRatio sets the convergence tolerance. 0 propagates every
// change; r > 0 only re-activates the contractors of a domain once its
// size has decreased by more than a fraction r since the last activation.
// The ratio is forwarded to sub-networks.
func (n *Network) SetFixedPointRatio(r float64) error {
	if r < 0 || r > 1 || r != r {
		return fmt.Errorf("%w: got %g", ErrInvalidRatio, r)
	}
	n.config.FixedPointRatio = r
	for _, sub := range n.subnets {
		if err := sub.SetFixedPointRatio(r); err != nil {
			return err
		}
	}
	return nil
}

// FixedPointRatio returns the convergence tolerance.
func (n *Network) FixedPointRatio() float64 { return n.config.FixedPointRatio }

// Add wires contractor c to doms. The number of domains must match
// c.Arity() and, when c implements DomainChecker, their kinds and
// dimensions must be accepted. Violations return a *ConfigurationError and
// leave the network unchanged.
//
// Adding the same contractor (by pointer identity) on the same domain tuple
// twice is a no-op. The new contractor is queued for the next run.
func (n *Network) Add(c Contractor, doms ...Domain) error {
	_, err := n.add(c, doms)
	return err
}

// add registers c and returns its contractor index, or -1 when c was
// already registered on the same domains.
func (n *Network) add(c Contractor, doms []Domain) (int, error) {
	if err := n.check(c, doms); err != nil {
		return -1, err
	}

	ids := make([]int, len(doms))
	for i, d := range doms {
		ids[i] = n.addDomain(d)
	}

	key, dedup := n.contractorKey(c, ids)
	if dedup {
		if _, ok := n.ctcIndex[key]; ok {
			return -1, nil
		}
	}

	node, cid := n.ctcs.alloc()
	node.ctc = c
	node.doms = ids
	node.view = make([]Domain, len(doms))
	copy(node.view, doms)

	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			node.selfRef = true
			continue
		}
		seen[id] = true
		dn := n.domains.at(id)
		dn.ctcs = append(dn.ctcs, cid)
	}
	if dedup {
		n.ctcIndex[key] = cid
	}
	if n.monitor != nil {
		n.monitor.recordContractor()
	}

	n.activate(cid)
	n.logger.Debug().
		Str("contractor", contractorName(c)).
		Int("domains", len(doms)).
		Int("pending", n.queue.len()).
		Msg("contractor added")
	return cid, nil
}

func (n *Network) check(c Contractor, doms []Domain) error {
	if c == nil {
		return &ConfigurationError{Code: CodeNilContractor, Contractor: "<nil>", Position: -1, Message: "contractor is nil"}
	}
	name := contractorName(c)
	if len(doms) == 0 {
		return &ConfigurationError{Code: CodeNoDomains, Contractor: name, Position: -1, Message: "cannot add a contractor without domains"}
	}
	for i, d := range doms {
		if isNil(d) {
			return &ConfigurationError{Code: CodeNilDomain, Contractor: name, Position: i, Message: "domain is nil"}
		}
		if !reflect.TypeOf(d).Comparable() {
			return &ConfigurationError{Code: CodeInvalidDomain, Contractor: name, Position: i,
				Message: fmt.Sprintf("%T is not comparable; use a pointer type", d)}
		}
	}
	if a := c.Arity(); a != Variadic && a != len(doms) {
		return &ConfigurationError{
			Code:       CodeArityMismatch,
			Contractor: name,
			Position:   -1,
			Expected:   fmt.Sprintf("%d domains", a),
			Got:        fmt.Sprintf("%d domains", len(doms)),
		}
	}
	if checker, ok := c.(DomainChecker); ok {
		if err := checker.CheckDomains(doms); err != nil {
			var cfgErr *ConfigurationError
			if errors.As(err, &cfgErr) {
				return cfgErr
			}
			return &ConfigurationError{Code: CodeKindMismatch, Contractor: name, Position: -1, Message: err.Error()}
		}
	}
	return nil
}

func isNil(d Domain) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// contractorKey returns the deduplication key of c on ids. Only pointer
// contractors are deduplicated: value contractors may not be comparable.
func (n *Network) contractorKey(c Contractor, ids []int) (ctcKey, bool) {
	if reflect.TypeOf(c).Kind() != reflect.Pointer {
		return ctcKey{}, false
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return ctcKey{ctc: c, doms: strings.Join(parts, ",")}, true
}

// addDomain registers d if needed and returns its index.
func (n *Network) addDomain(d Domain) int {
	if id, ok := n.domIndex[d]; ok {
		return id
	}
	node, id := n.domains.alloc()
	node.dom = d
	node.baseline = d.Size()
	node.seenRev = d.Revision()
	n.domIndex[d] = id
	if n.monitor != nil {
		n.monitor.recordDomain()
	}
	for _, p := range n.parents {
		p.parent.attach(p.cid, d)
	}
	return id
}

// attach wires d, just registered in the network nested as contractor cid,
// to that contractor.
func (n *Network) attach(cid int, d Domain) {
	id := n.addDomain(d)
	node := n.ctcs.at(cid)
	for _, existing := range node.doms {
		if existing == id {
			return
		}
	}
	node.doms = append(node.doms, id)
	node.view = append(node.view, d)
	dn := n.domains.at(id)
	dn.ctcs = append(dn.ctcs, cid)
	n.activate(cid)
}

// CreateIntermVar allocates a domain owned by n, initialised to v. The
// returned Var stays valid for the network's lifetime regardless of how
// many variables are created afterwards. It is typically used for
// intermediate quantities, e.g. one per observation:
//
//	d := ctcnet.CreateIntermVar(n, interval.Entire())
//	n.Add(ctc.NewSub(), a, b, d) // d = a - b
func CreateIntermVar[T Value[T]](n *Network, v T) *Var[T] {
	d := NewVar(v)
	id := n.addDomain(d)
	node := n.domains.at(id)
	node.owned = true
	node.reset = func() { d.Reset(v) }
	n.owned = append(n.owned, id)
	return d
}

// AddNetwork registers sub as a single contractor over all of its domains.
// Whenever one of those domains changes in n, sub is contracted to its own
// fixpoint. Domains and contractors added to sub later are wired into n as
// well. Sub-networks inherit n's fixpoint ratio. Adding the same network
// twice is a no-op.
func (n *Network) AddNetwork(sub *Network) error {
	if sub == nil || sub == n || sub.contains(n) {
		return &ConfigurationError{Code: CodeInvalidNetwork, Contractor: "network", Position: -1,
			Message: "a network cannot contain itself"}
	}
	for _, s := range n.subnets {
		if s == sub {
			return nil
		}
	}
	cid, err := n.add(&subnetwork{net: sub}, sub.Domains())
	if err != nil {
		return err
	}
	n.subnets = append(n.subnets, sub)
	sub.parents = append(sub.parents, parentLink{parent: n, cid: cid})
	return sub.SetFixedPointRatio(n.config.FixedPointRatio)
}

func (n *Network) contains(other *Network) bool {
	for _, s := range n.subnets {
		if s == other || s.contains(other) {
			return true
		}
	}
	return false
}

// Domains returns every registered domain in registration order.
func (n *Network) Domains() []Domain {
	out := make([]Domain, n.domains.len())
	for i := range out {
		out[i] = n.domains.at(i).dom
	}
	return out
}

// DomainCount returns the number of registered domains.
func (n *Network) DomainCount() int { return n.domains.len() }

// ContractorCount returns the number of registered contractors.
func (n *Network) ContractorCount() int { return n.ctcs.len() }

// PendingCount returns the number of contractors waiting in the worklist.
func (n *Network) PendingCount() int { return n.queue.len() }

// Iterations returns the total number of contractor calls performed by
// the network since its creation.
func (n *Network) Iterations() int { return n.calls }

// State returns the propagation state.
func (n *Network) State() State { return n.state }

// Emptiness reports whether any registered domain is empty, i.e. the
// constraint system has no solution in the explored region.
func (n *Network) Emptiness() bool {
	for i := 0; i < n.domains.len(); i++ {
		if n.domains.at(i).dom.IsEmpty() {
			return true
		}
	}
	return false
}

// IsOwned reports whether d was created by CreateIntermVar on n.
func (n *Network) IsOwned(d Domain) bool {
	id, ok := n.domIndex[d]
	return ok && n.domains.at(id).owned
}

// ContractorsOf returns the contractors reading d, in registration order.
func (n *Network) ContractorsOf(d Domain) []Contractor {
	id, ok := n.domIndex[d]
	if !ok {
		return nil
	}
	dn := n.domains.at(id)
	out := make([]Contractor, len(dn.ctcs))
	for i, cid := range dn.ctcs {
		out[i] = n.ctcs.at(cid).ctc
	}
	return out
}

// SetDomainName labels d in graph exports. Unregistered domains are
// registered.
func (n *Network) SetDomainName(d Domain, name string) error {
	if isNil(d) || !reflect.TypeOf(d).Comparable() {
		return &ConfigurationError{Code: CodeInvalidDomain, Contractor: "name", Position: -1, Message: "cannot name this domain"}
	}
	n.domains.at(n.addDomain(d)).label = norm.NFC.String(name)
	return nil
}

// SetContractorName labels every registration of c in graph exports and
// reports whether c is registered.
func (n *Network) SetContractorName(c Contractor, name string) bool {
	found := false
	name = norm.NFC.String(name)
	for i := 0; i < n.ctcs.len(); i++ {
		node := n.ctcs.at(i)
		if sameContractor(node.ctc, c) {
			node.label = name
			found = true
		}
	}
	return found
}

func sameContractor(a, b Contractor) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// String summarises the network.
func (n *Network) String() string {
	return fmt.Sprintf("Contractor network: %d contractors, %d domains, %d pending, %s",
		n.ctcs.len(), n.domains.len(), n.queue.len(), n.state)
}
