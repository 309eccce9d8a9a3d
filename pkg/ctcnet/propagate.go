package ctcnet

import (
	"context"
	"time"
)

// Result summarises one propagation run.
type Result struct {
	// State is the network state when the run returned: StateFixpoint or
	// StateBudgetExhausted.
	State State

	// Calls is the number of contractor calls made by this run.
	Calls int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Empty reports whether some domain is empty: the constraints have no
	// solution in the explored region.
	Empty bool

	// Pending is the number of contractors left in the worklist.
	Pending int
}

// budget bounds a single run. Zero fields are unlimited. With sweep set,
// the run stops once every contractor pending at its start has been called.
type budget struct {
	duration time.Duration
	calls    int
	sweep    bool
}

// Contract propagates until the worklist is empty (full) or, when full is
// false, until one sweep over the contractors pending at the start of the
// call has completed. The configured MaxDuration and MaxIterations apply
// in both modes. A run that stops early leaves the worklist in place and
// the next call resumes it.
//
// An empty domain is a valid outcome, reported through Result.Empty.
func (n *Network) Contract(full bool) Result {
	b := n.configBudget()
	b.sweep = !full
	res, _ := n.run(context.Background(), b)
	return res
}

// ContractDuring propagates for at most dt of wall-clock time and returns
// the time actually spent. At least one contractor is called per
// invocation when any is pending, so repeated calls always make progress
// and eventually reach the same fixpoint as Contract(true).
func (n *Network) ContractDuring(dt time.Duration) time.Duration {
	b := n.configBudget()
	if b.duration == 0 || dt < b.duration {
		b.duration = dt
	}
	if b.duration <= 0 {
		b.duration = time.Nanosecond
	}
	res, _ := n.run(context.Background(), b)
	return res.Elapsed
}

// ContractContext behaves like Contract(true) but also stops when ctx is
// done. Cancellation is checked between contractor calls; the network is
// left resumable and ctx.Err() is returned.
func (n *Network) ContractContext(ctx context.Context) (Result, error) {
	return n.run(ctx, n.configBudget())
}

func (n *Network) configBudget() budget {
	return budget{duration: n.config.MaxDuration, calls: n.config.MaxIterations}
}

// TriggerAll marks every contractor active, forcing a full pass on the
// next run. Use it after changing domains from outside the engine when
// automatic change detection is not enough, e.g. after widening a domain
// whose size is unbounded.
func (n *Network) TriggerAll() {
	for i := 0; i < n.domains.len(); i++ {
		n.rebase(n.domains.at(i))
	}
	for cid := 0; cid < n.ctcs.len(); cid++ {
		n.enqueue(cid, false)
	}
	if n.queue.len() > 0 && !n.running {
		n.state = StateIdle
	}
	for _, p := range n.parents {
		p.parent.activate(p.cid)
	}
}

// ResetIntermVars restores every domain created with CreateIntermVar to
// its creation value and triggers all contractors.
func (n *Network) ResetIntermVars() {
	for _, id := range n.owned {
		if node := n.domains.at(id); node.reset != nil {
			node.reset()
		}
	}
	n.TriggerAll()
}

// activate queues a newly added contractor behind those already pending.
// Parents of n are activated too, since n now has work to do.
func (n *Network) activate(cid int) {
	n.enqueue(cid, false)
	if !n.running {
		n.state = StateIdle
	}
	for _, p := range n.parents {
		p.parent.activate(p.cid)
	}
}

// enqueue pushes cid unless it is already pending. Triggered contractors
// go to the front under QueueLIFO.
func (n *Network) enqueue(cid int, triggered bool) {
	node := n.ctcs.at(cid)
	if node.active {
		return
	}
	node.active = true
	if triggered && n.config.Queue == QueueLIFO {
		n.queue.pushFront(cid)
	} else {
		n.queue.pushBack(cid)
	}
	if n.monitor != nil {
		if triggered {
			n.monitor.recordActivation()
		}
		n.monitor.recordQueueSize(n.queue.len())
	}
}

func (n *Network) rebase(dn *domNode) {
	dn.baseline = dn.dom.Size()
	dn.seenRev = dn.dom.Revision()
}

// syncExternalChanges re-activates the readers of every domain modified
// since the network last observed it. External changes are always
// significant, whatever the fixpoint ratio.
func (n *Network) syncExternalChanges() {
	for id := 0; id < n.domains.len(); id++ {
		dn := n.domains.at(id)
		if dn.dom.Revision() == dn.seenRev {
			continue
		}
		n.rebase(dn)
		for _, cid := range dn.ctcs {
			n.enqueue(cid, false)
		}
	}
}

func (n *Network) run(ctx context.Context, b budget) (Result, error) {
	if n.running {
		return Result{State: StatePropagating, Pending: n.queue.len()}, nil
	}
	n.running = true
	defer func() { n.running = false }()

	start := time.Now()
	n.state = StatePropagating
	n.syncExternalChanges()

	n.logger.Debug().
		Int("contractors", n.ctcs.len()).
		Int("domains", n.domains.len()).
		Int("pending", n.queue.len()).
		Float64("ratio", n.config.FixedPointRatio).
		Msg("contraction started")

	var (
		calls int
		err   error
	)
	sweep := 0
	if b.sweep {
		sweep = n.markSweep()
	}
	for n.queue.len() > 0 {
		if b.sweep && sweep == 0 {
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		if b.calls > 0 && calls >= b.calls {
			break
		}
		if b.duration > 0 && calls > 0 && time.Since(start) >= b.duration {
			break
		}

		cid, _ := n.queue.popFront()
		if node := n.ctcs.at(cid); node.sweep {
			node.sweep = false
			sweep--
		}
		n.invoke(cid)
		calls++
	}
	if sweep > 0 {
		n.unmarkSweep()
	}

	elapsed := time.Since(start)
	n.calls += calls
	exhausted := n.queue.len() > 0
	if exhausted {
		n.state = StateBudgetExhausted
	} else {
		n.state = StateFixpoint
	}
	if n.monitor != nil {
		n.monitor.recordRun(elapsed, exhausted)
	}

	res := Result{
		State:   n.state,
		Calls:   calls,
		Elapsed: elapsed,
		Empty:   n.Emptiness(),
		Pending: n.queue.len(),
	}
	n.logger.Debug().
		Int("iterations", calls).
		Dur("elapsed", elapsed).
		Int("pending", res.Pending).
		Str("state", res.State.String()).
		Msg("contraction finished")
	if res.Empty {
		n.logger.Warn().Int("iterations", calls).Msg("empty domain: no solution in the explored region")
	}
	return res, err
}

// invoke runs one contractor and activates the readers of every domain it
// changed significantly.
func (n *Network) invoke(cid int) {
	node := n.ctcs.at(cid)
	node.active = false

	before := make([]uint64, len(node.view))
	anyEmpty := false
	for i, d := range node.view {
		before[i] = d.Revision()
		if d.IsEmpty() {
			anyEmpty = true
		}
	}

	if anyEmpty {
		for _, d := range node.view {
			d.SetEmpty()
		}
		if n.monitor != nil {
			n.monitor.recordEmptinessSpread()
		}
	} else {
		changed := node.ctc.Contract(node.view)
		if n.monitor != nil {
			n.monitor.recordCall(changed)
		}
	}

	for i := range before {
		id, d := node.doms[i], node.view[i]
		if d.Revision() == before[i] {
			continue
		}
		dn := n.domains.at(id)
		dn.seenRev = d.Revision()
		if !n.significant(dn) {
			continue
		}
		dn.baseline = d.Size()
		for _, other := range dn.ctcs {
			if other == cid && !node.selfRef {
				continue
			}
			n.enqueue(other, true)
		}
	}
}

// markSweep flags every pending contractor as part of the current sweep
// and returns how many there are.
func (n *Network) markSweep() int {
	count := 0
	for cid := 0; cid < n.ctcs.len(); cid++ {
		if node := n.ctcs.at(cid); node.active {
			node.sweep = true
			count++
		}
	}
	return count
}

func (n *Network) unmarkSweep() {
	for cid := 0; cid < n.ctcs.len(); cid++ {
		n.ctcs.at(cid).sweep = false
	}
}

// significant reports whether dn, which just changed, has shrunk enough
// since its baseline to re-activate its readers.
func (n *Network) significant(dn *domNode) bool {
	d := dn.dom
	if d.IsEmpty() {
		return true
	}
	r := n.config.FixedPointRatio
	if r == 0 {
		return true
	}
	return shrunk(dn.baseline, d.Size(), r)
}
