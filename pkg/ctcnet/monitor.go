package ctcnet

// monitor.go: statistics about propagation runs

import (
	"sync"
	"time"
)

// Stats holds statistics about the propagation process.
type Stats struct {
	// Structure
	ContractorsAdded int // Number of contractors registered
	DomainsAdded     int // Number of domains registered

	// Propagation
	Runs              int           // Number of Contract calls
	ContractorCalls   int           // Number of Contract invocations on contractors
	ReportedChanges   int           // Calls for which the contractor reported a change
	Activations       int           // Contractors pushed onto the worklist by a change
	EmptinessSpread   int           // Calls skipped because an input was already empty
	PropagationTime   time.Duration // Time spent in propagation
	BudgetExhaustions int           // Runs stopped by a time or iteration budget

	// Memory
	PeakQueueSize int // Peak size of the worklist
}

// Monitor collects Stats. It is safe for concurrent use, so one monitor can
// observe several networks contracted in parallel by ContractAll.
type Monitor struct {
	mu    sync.Mutex
	stats Stats
}

// NewMonitor creates a new monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// GetStats returns a copy of the current statistics.
func (m *Monitor) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Reset clears every counter.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = Stats{}
}

func (m *Monitor) recordRun(elapsed time.Duration, exhausted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Runs++
	m.stats.PropagationTime += elapsed
	if exhausted {
		m.stats.BudgetExhaustions++
	}
}

func (m *Monitor) recordCall(changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.ContractorCalls++
	if changed {
		m.stats.ReportedChanges++
	}
}

func (m *Monitor) recordEmptinessSpread() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.EmptinessSpread++
}

func (m *Monitor) recordActivation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Activations++
}

func (m *Monitor) recordContractor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.ContractorsAdded++
}

func (m *Monitor) recordDomain() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.DomainsAdded++
}

func (m *Monitor) recordQueueSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if size > m.stats.PeakQueueSize {
		m.stats.PeakQueueSize = size
	}
}
