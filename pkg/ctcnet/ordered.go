package ctcnet

import (
	"math"
	"time"
)

// ContractOrdered ignores the worklist and calls contractors in a fixed
// order: forward in registration order, then backward in reverse order
// (the last contractor is not called twice in a row). Passes are repeated
// until no domain shrinks by more than the fixpoint ratio during a
// backward pass. With a good registration order, e.g. a chain of
// elementary operations added from inputs to outputs, this needs far fewer
// calls than worklist propagation.
//
// The configured MaxDuration and MaxIterations are checked between passes.
// When the run converges the worklist is dropped and the state is
// StateFixpoint; otherwise every contractor is queued again and the state
// is StateBudgetExhausted.
func (n *Network) ContractOrdered() Result {
	if n.running {
		return Result{State: StatePropagating, Pending: n.queue.len()}
	}
	n.running = true
	defer func() { n.running = false }()

	start := time.Now()
	n.state = StatePropagating
	n.syncExternalChanges()
	b := n.configBudget()
	count := n.ctcs.len()

	n.logger.Debug().
		Int("contractors", count).
		Int("domains", n.domains.len()).
		Float64("ratio", n.config.FixedPointRatio).
		Msg("ordered contraction started")

	saved := make([]float64, n.domains.len())
	calls, passes := 0, 0
	converged := count == 0
	for !converged {
		if b.calls > 0 && calls >= b.calls {
			break
		}
		if b.duration > 0 && calls > 0 && time.Since(start) >= b.duration {
			break
		}
		passes++

		for cid := 0; cid < count; cid++ {
			n.callOrdered(cid)
			calls++
		}
		for id := range saved {
			saved[id] = n.domains.at(id).dom.Size()
		}
		for cid := count - 2; cid >= 0; cid-- {
			n.callOrdered(cid)
			calls++
		}

		converged = true
		for id := range saved {
			d := n.domains.at(id).dom
			if d.IsEmpty() {
				converged = true
				break
			}
			if shrunk(saved[id], d.Size(), n.config.FixedPointRatio) {
				converged = false
			}
		}
	}

	for id := 0; id < n.domains.len(); id++ {
		n.rebase(n.domains.at(id))
	}
	if converged {
		n.dropPending()
		n.state = StateFixpoint
	} else {
		for cid := 0; cid < count; cid++ {
			n.enqueue(cid, false)
		}
		n.state = StateBudgetExhausted
	}

	elapsed := time.Since(start)
	n.calls += calls
	if n.monitor != nil {
		n.monitor.recordRun(elapsed, !converged)
	}
	res := Result{
		State:   n.state,
		Calls:   calls,
		Elapsed: elapsed,
		Empty:   n.Emptiness(),
		Pending: n.queue.len(),
	}
	n.logger.Debug().
		Int("passes", passes).
		Int("iterations", calls).
		Dur("elapsed", elapsed).
		Str("state", res.State.String()).
		Msg("ordered contraction finished")
	if res.Empty {
		n.logger.Warn().Int("iterations", calls).Msg("empty domain: no solution in the explored region")
	}
	return res
}

// callOrdered runs one contractor without touching the worklist.
func (n *Network) callOrdered(cid int) {
	node := n.ctcs.at(cid)
	for _, d := range node.view {
		if !d.IsEmpty() {
			continue
		}
		for _, e := range node.view {
			e.SetEmpty()
		}
		if n.monitor != nil {
			n.monitor.recordEmptinessSpread()
		}
		return
	}
	changed := node.ctc.Contract(node.view)
	if n.monitor != nil {
		n.monitor.recordCall(changed)
	}
}

// dropPending empties the worklist.
func (n *Network) dropPending() {
	for cid := 0; cid < n.ctcs.len(); cid++ {
		node := n.ctcs.at(cid)
		node.active = false
		node.sweep = false
	}
	n.queue.clear()
}

// shrunk reports whether a size went from before to after by more than a
// fraction r. An unbounded size becoming bounded always counts.
func shrunk(before, after, r float64) bool {
	if math.IsInf(before, 1) {
		return !math.IsInf(after, 1)
	}
	return after < before*(1-r)
}
